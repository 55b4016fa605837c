package model

// QuizAttempt is a point-in-time scoring snapshot. It is never mutated
// after creation; later edits to the quiz's answer key do not change it.
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	UserID    uint            `gorm:"not null;index" json:"userId"`
	QuizID    uint            `gorm:"not null;index" json:"quizId"`
	Quiz      *Quiz           `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	Score     int             `gorm:"not null" json:"score"` // 0-100
	Passed    bool            `gorm:"not null" json:"passed"`
	TimeSpent int             `gorm:"default:0" json:"timeSpent"` // seconds
	Answers   []AttemptAnswer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// swagger:model AttemptAnswer
type AttemptAnswer struct {
	BaseModel
	AttemptID      uint `gorm:"not null;index" json:"-"`
	QuestionID     uint `gorm:"not null" json:"questionId"`
	SelectedOption int  `gorm:"not null" json:"selectedOption"` // -1 = unanswered
	CorrectOption  int  `gorm:"not null" json:"correctOption"`
	IsCorrect      bool `gorm:"not null" json:"isCorrect"`
	Position       int  `gorm:"default:0" json:"-"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
