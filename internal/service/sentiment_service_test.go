package service

import (
	"context"
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeywordSentiment(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"This platform is really good for revision", model.SentimentPositive},
		{"I LOVE the explanations", model.SentimentPositive},
		{"Amazing question bank", model.SentimentPositive},
		{"The timer keeps resetting", model.SentimentNegative},
		{"", model.SentimentNegative},
	}

	for _, tc := range cases {
		verdict := KeywordSentiment(tc.text)
		assert.Equal(t, tc.want, verdict.Sentiment, tc.text)
		assert.Equal(t, 0.6, verdict.Confidence)
	}
}

func TestClassifyWithoutScriptUsesKeywords(t *testing.T) {
	svc := NewSentimentService(&config.SentimentConfig{})

	verdict := svc.Classify(context.Background(), "great quizzes")
	assert.Equal(t, model.SentimentPositive, verdict.Sentiment)
}

func TestClassifyFallsBackWhenScriptMissing(t *testing.T) {
	svc := NewSentimentService(&config.SentimentConfig{
		Python:         "python3",
		ScriptPath:     "/nonexistent/sentiment.py",
		TimeoutSeconds: 2 * time.Second,
	})

	verdict := svc.Classify(context.Background(), "the site keeps crashing")
	assert.Equal(t, model.SentimentNegative, verdict.Sentiment)
	assert.Equal(t, 0.6, verdict.Confidence)
}
