package service

import (
	"math"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"sort"
	"time"
)

// Activity buckets are computed in a fixed local offset so a user sees
// the same week regardless of server timezone.
var colomboTZ = time.FixedZone("Asia/Colombo", 5*3600+30*60)

type DashboardService struct {
	AttemptRepo      *repository.AttemptRepository
	SubjectRepo      *repository.SubjectRepository
	QuizRepo         *repository.QuizRepository
	UserRepo         *repository.UserRepository
	FeedbackRepo     *repository.FeedbackRepository
	SubscriptionRepo *repository.SubscriptionRepository
	Subscriptions    *SubscriptionService
}

func NewDashboardService(
	attemptRepo *repository.AttemptRepository,
	subjectRepo *repository.SubjectRepository,
	quizRepo *repository.QuizRepository,
	userRepo *repository.UserRepository,
	feedbackRepo *repository.FeedbackRepository,
	subscriptionRepo *repository.SubscriptionRepository,
	subscriptions *SubscriptionService,
) *DashboardService {
	return &DashboardService{
		AttemptRepo:      attemptRepo,
		SubjectRepo:      subjectRepo,
		QuizRepo:         quizRepo,
		UserRepo:         userRepo,
		FeedbackRepo:     feedbackRepo,
		SubscriptionRepo: subscriptionRepo,
		Subscriptions:    subscriptions,
	}
}

// DayActivity is one Monday-first weekday slot of the current week.
type DayActivity struct {
	Day      string `json:"day"`
	Attempts int    `json:"attempts"`
}

// MonthActivity is one month of the trailing six-month window.
type MonthActivity struct {
	Month        string  `json:"month"` // YYYY-MM
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"averageScore"`
}

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// mondayIndex maps time.Weekday (Sunday=0) onto a Monday-first slot.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// weekStart returns local midnight of the Monday of now's week.
func weekStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return midnight.AddDate(0, 0, -mondayIndex(local.Weekday()))
}

// WeeklyActivity buckets attempts of the current Monday-Sunday week into
// seven day-of-week slots.
func WeeklyActivity(points []repository.ScorePoint, now time.Time, loc *time.Location) []DayActivity {
	start := weekStart(now, loc)
	end := start.AddDate(0, 0, 7)

	activity := make([]DayActivity, 7)
	for i := range activity {
		activity[i].Day = weekdayNames[i]
	}

	for _, p := range points {
		local := p.CreatedAt.In(loc)
		if local.Before(start) || !local.Before(end) {
			continue
		}
		activity[mondayIndex(local.Weekday())].Attempts++
	}
	return activity
}

// MonthlyActivity rolls attempts into the trailing six calendar months,
// zero-filling months without activity.
func MonthlyActivity(points []repository.ScorePoint, now time.Time, loc *time.Location) []MonthActivity {
	local := now.In(loc)
	firstMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -5, 0)

	months := make([]MonthActivity, 6)
	index := make(map[string]int, 6)
	for i := 0; i < 6; i++ {
		key := firstMonth.AddDate(0, i, 0).Format("2006-01")
		months[i] = MonthActivity{Month: key}
		index[key] = i
	}

	sums := make([]int, 6)
	for _, p := range points {
		key := p.CreatedAt.In(loc).Format("2006-01")
		i, ok := index[key]
		if !ok {
			continue
		}
		months[i].Attempts++
		sums[i] += p.Score
	}

	for i := range months {
		if months[i].Attempts > 0 {
			months[i].AverageScore = math.Round(float64(sums[i]) / float64(months[i].Attempts))
		}
	}
	return months
}

// Improvement compares the mean of the latest 10 scores against the
// preceding 10, one decimal place. Scores arrive newest first. Fewer
// than two attempts yield zero.
func Improvement(scoresNewestFirst []int) float64 {
	if len(scoresNewestFirst) < 2 {
		return 0
	}

	recent := scoresNewestFirst
	if len(recent) > 10 {
		recent = scoresNewestFirst[:10]
	}
	previous := []int{}
	if len(scoresNewestFirst) > 10 {
		previous = scoresNewestFirst[10:]
		if len(previous) > 10 {
			previous = previous[:10]
		}
	}
	if len(previous) == 0 {
		return 0
	}

	diff := mean(recent) - mean(previous)
	return math.Round(diff*10) / 10
}

func mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

var dailyMessages = []string{
	"Every quiz you take sharpens the next one.",
	"Consistency beats cramming. Keep going!",
	"Review your wrong answers, that's where the marks hide.",
	"Small daily progress adds up to big results.",
	"A pass today, a distinction tomorrow.",
}

// UserDashboard is the full per-user stats payload.
type UserDashboard struct {
	TotalAttempts      int64                           `json:"totalAttempts"`
	AverageScore       float64                         `json:"averageScore"`
	HighestScore       int                             `json:"highestScore"`
	LowestScore        int                             `json:"lowestScore"`
	PassRate           float64                         `json:"passRate"`
	Improvement        float64                         `json:"improvement"`
	WeeklyActivity     []DayActivity                   `json:"weeklyActivity"`
	MonthlyActivity    []MonthActivity                 `json:"monthlyActivity"`
	SubjectPerformance []repository.SubjectPerformance `json:"subjectPerformance"`
	DailyMessage       string                          `json:"dailyMessage"`
}

func (s *DashboardService) UserStats(userID uint) (*UserDashboard, error) {
	stats, err := s.AttemptRepo.StatsByUser(userID)
	if err != nil {
		return nil, err
	}

	scores, err := s.AttemptRepo.RecentScores(userID, 20)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sixMonthsAgo := time.Date(now.In(colomboTZ).Year(), now.In(colomboTZ).Month(), 1, 0, 0, 0, 0, colomboTZ).AddDate(0, -5, 0)
	points, err := s.AttemptRepo.ScoresSince(userID, sixMonthsAgo)
	if err != nil {
		return nil, err
	}

	performance, err := s.AttemptRepo.PerformanceBySubject(userID)
	if err != nil {
		return nil, err
	}

	passRate := 0.0
	if stats.TotalAttempts > 0 {
		passRate = math.Round(float64(stats.PassedCount)/float64(stats.TotalAttempts)*10000) / 100
	}

	return &UserDashboard{
		TotalAttempts:      stats.TotalAttempts,
		AverageScore:       math.Round(stats.AverageScore*100) / 100,
		HighestScore:       stats.HighestScore,
		LowestScore:        stats.LowestScore,
		PassRate:           passRate,
		Improvement:        Improvement(scores),
		WeeklyActivity:     WeeklyActivity(points, now, colomboTZ),
		MonthlyActivity:    MonthlyActivity(points, now, colomboTZ),
		SubjectPerformance: performance,
		DailyMessage:       dailyMessages[now.In(colomboTZ).YearDay()%len(dailyMessages)],
	}, nil
}

func (s *DashboardService) RecentQuizzes(userID uint, n int) ([]model.QuizAttempt, error) {
	if n <= 0 {
		n = 5
	}
	return s.AttemptRepo.RecentAttempts(userID, n)
}

// RecommendedSubject pairs a subject with whether it is untouched.
type RecommendedSubject struct {
	model.Subject
	Attempted bool `json:"attempted"`
}

// Recommendations surfaces active subjects that have quizzes, putting
// unattempted subjects first, then the ones with the most quizzes.
func (s *DashboardService) Recommendations(userID uint) ([]RecommendedSubject, error) {
	subjects, _, err := s.SubjectRepo.List(repository.SubjectFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	attemptedIDs, err := s.AttemptRepo.AttemptedSubjectIDs(userID)
	if err != nil {
		return nil, err
	}
	attempted := make(map[uint]bool, len(attemptedIDs))
	for _, id := range attemptedIDs {
		attempted[id] = true
	}

	recs := make([]RecommendedSubject, 0, len(subjects))
	for _, subject := range subjects {
		if subject.QuizCount == 0 {
			continue
		}
		recs = append(recs, RecommendedSubject{
			Subject:   subject,
			Attempted: attempted[subject.ID],
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Attempted != recs[j].Attempted {
			return !recs[i].Attempted
		}
		return recs[i].QuizCount > recs[j].QuizCount
	})

	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs, nil
}

// EnrolledCourse marks a subject the user can access, with whether they
// have attempted anything in it.
type EnrolledCourse struct {
	model.Subject
	IsEnrolled bool `json:"isEnrolled"`
}

// EnrolledCourses lists active subjects at the caller's accessible levels.
func (s *DashboardService) EnrolledCourses(userID uint) ([]EnrolledCourse, error) {
	levels, err := s.Subscriptions.LevelsForUser(userID)
	if err != nil {
		return nil, err
	}

	subjects, _, err := s.SubjectRepo.List(repository.SubjectFilter{ActiveOnly: true, Levels: levels})
	if err != nil {
		return nil, err
	}

	attemptedIDs, err := s.AttemptRepo.AttemptedSubjectIDs(userID)
	if err != nil {
		return nil, err
	}
	attempted := make(map[uint]bool, len(attemptedIDs))
	for _, id := range attemptedIDs {
		attempted[id] = true
	}

	courses := make([]EnrolledCourse, 0, len(subjects))
	for _, subject := range subjects {
		courses = append(courses, EnrolledCourse{
			Subject:    subject,
			IsEnrolled: attempted[subject.ID],
		})
	}
	return courses, nil
}

// AdminDashboard is the platform-wide rollup for the admin console.
type AdminDashboard struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalSubjects int64   `json:"totalSubjects"`
	TotalQuizzes  int64   `json:"totalQuizzes"`
	TotalAttempts int64   `json:"totalAttempts"`
	Feedback      struct {
		Positive int64 `json:"positive"`
		Negative int64 `json:"negative"`
	} `json:"feedback"`
	Revenue float64 `json:"revenue"`
}

func (s *DashboardService) AdminStats() (*AdminDashboard, error) {
	var dash AdminDashboard
	var err error

	if dash.TotalUsers, err = s.UserRepo.Count(); err != nil {
		return nil, err
	}
	if dash.TotalSubjects, err = s.SubjectRepo.Count(); err != nil {
		return nil, err
	}
	if dash.TotalQuizzes, err = s.QuizRepo.Count(); err != nil {
		return nil, err
	}
	if dash.TotalAttempts, err = s.AttemptRepo.Count(); err != nil {
		return nil, err
	}
	if dash.Feedback.Positive, err = s.FeedbackRepo.CountBySentiment(model.SentimentPositive, nil); err != nil {
		return nil, err
	}
	if dash.Feedback.Negative, err = s.FeedbackRepo.CountBySentiment(model.SentimentNegative, nil); err != nil {
		return nil, err
	}
	if dash.Revenue, err = s.SubscriptionRepo.TotalRevenue(); err != nil {
		return nil, err
	}
	return &dash, nil
}
