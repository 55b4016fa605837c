package service

import (
	"context"
	"encoding/json"
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/pkg/logger"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// SentimentVerdict is the classifier outcome for one text.
type SentimentVerdict struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// SentimentClassifier labels free text as positive or negative.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) SentimentVerdict
}

// SentimentService shells out to the configured classifier script under a
// bounded timeout. Any failure (spawn error, non-zero exit, timeout,
// unparsable output) falls back to the keyword heuristic.
type SentimentService struct {
	Cfg *config.SentimentConfig
}

func NewSentimentService(cfg *config.SentimentConfig) *SentimentService {
	return &SentimentService{Cfg: cfg}
}

var positiveKeywords = []string{"good", "great", "excellent", "love", "amazing"}

// KeywordSentiment is the fixed fallback heuristic.
func KeywordSentiment(text string) SentimentVerdict {
	lower := strings.ToLower(text)
	for _, w := range positiveKeywords {
		if strings.Contains(lower, w) {
			return SentimentVerdict{Sentiment: model.SentimentPositive, Confidence: 0.6}
		}
	}
	return SentimentVerdict{Sentiment: model.SentimentNegative, Confidence: 0.6}
}

func (s *SentimentService) Classify(ctx context.Context, text string) SentimentVerdict {
	if s.Cfg.ScriptPath == "" {
		return KeywordSentiment(text)
	}

	ctx, cancel := context.WithTimeout(ctx, s.Cfg.TimeoutSeconds)
	defer cancel()

	python := s.Cfg.Python
	if python == "" {
		python = "python3"
	}

	cmd := exec.CommandContext(ctx, python, s.Cfg.ScriptPath, text)
	out, err := cmd.Output()
	if err != nil {
		logger.Log.Warn("Sentiment classifier failed, using keyword fallback", zap.Error(err))
		return KeywordSentiment(text)
	}

	var verdict SentimentVerdict
	if err := json.Unmarshal(out, &verdict); err != nil ||
		(verdict.Sentiment != model.SentimentPositive && verdict.Sentiment != model.SentimentNegative) {
		logger.Log.Warn("Sentiment classifier output unparsable, using keyword fallback",
			zap.String("output", string(out)))
		return KeywordSentiment(text)
	}
	return verdict
}
