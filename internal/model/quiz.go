package model

type QuizDifficulty string

const (
	DifficultyEasy   QuizDifficulty = "Easy"
	DifficultyMedium QuizDifficulty = "Medium"
	DifficultyHard   QuizDifficulty = "Hard"
)

func ValidDifficulty(d string) bool {
	switch QuizDifficulty(d) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title             string         `gorm:"size:200;not null;index:idx_quiz_subject_title" json:"title"`
	Description       string         `gorm:"size:1000" json:"description"`
	SubjectID         uint           `gorm:"not null;index;index:idx_quiz_subject_title" json:"subjectId"`
	Subject           *Subject       `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	TimeLimit         int            `gorm:"default:0" json:"timeLimit"` // minutes, 0 = unlimited
	Difficulty        QuizDifficulty `gorm:"size:10;default:'Medium'" json:"difficulty"`
	PassingScore      int            `gorm:"default:60" json:"passingScore"`
	SubscriptionLevel string         `gorm:"size:20;default:'Basic'" json:"subscriptionLevel"`
	IsActive          bool           `gorm:"default:true" json:"isActive"`
	CreatedBy         uint           `json:"createdBy"`
	Questions         []Question     `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question options are stored as a JSON-encoded string array. The
// question list is replaced wholesale on quiz update, never patched.
// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint        `gorm:"not null;index" json:"quizId"`
	Text          string      `gorm:"size:1000;not null" json:"question"`
	Options       StringArray `gorm:"type:json" json:"options"`
	CorrectAnswer int         `gorm:"not null" json:"correctAnswer"`
	Explanation   string      `gorm:"size:1000" json:"explanation"`
	Position      int         `gorm:"default:0" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}
