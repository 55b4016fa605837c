package model

// Subject groups quizzes under a grade level. QuizCount is denormalized:
// it is adjusted in the same transaction as every quiz create/move/delete
// and must always equal the number of quizzes referencing the subject.
// swagger:model Subject
type Subject struct {
	BaseModel
	Name        string `gorm:"size:100;not null;uniqueIndex:idx_subject_name_level" json:"name"`
	Level       string `gorm:"size:20;not null;uniqueIndex:idx_subject_name_level" json:"level"`
	Description string `gorm:"size:500" json:"description"`
	QuizCount   int    `gorm:"default:0" json:"quizCount"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
	CreatedBy   uint   `json:"createdBy"`
}

func (Subject) TableName() string {
	return "subjects"
}
