package model

// Admin accounts live in their own table and are created by the seed
// process only, never through public registration.
// swagger:model Admin
type Admin struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'admin'" json:"role"`
}

func (Admin) TableName() string {
	return "admins"
}
