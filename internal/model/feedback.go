package model

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
)

// swagger:model Feedback
type Feedback struct {
	BaseModel
	UserID     uint    `gorm:"not null;index" json:"userId"`
	User       *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text       string  `gorm:"size:2000;not null" json:"text"`
	Sentiment  string  `gorm:"size:10;not null" json:"sentiment"`
	Confidence float64 `gorm:"not null" json:"confidence"`
	IsActive   bool    `gorm:"default:true" json:"isActive"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
