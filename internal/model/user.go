package model

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Subscription levels, lowest to highest.
const (
	LevelBasic     = "Basic"
	LevelSchoolPro = "School Pro"
	LevelOLPro     = "O/L Pro"
	LevelAL        = "A/L"
)

func ValidSubjectLevel(level string) bool {
	switch level {
	case LevelSchoolPro, LevelOLPro, LevelAL:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	FirstName         string   `gorm:"size:100" json:"firstName"`
	LastName          string   `gorm:"size:100" json:"lastName"`
	Email             string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password          string   `gorm:"size:100" json:"-"`
	GoogleID          string   `gorm:"size:100;index" json:"-"`
	Role              UserRole `gorm:"size:20;default:'user'" json:"role"`
	SubscriptionLevel string   `gorm:"size:20;default:'Basic'" json:"subscriptionLevel"`
	Phone             string   `gorm:"size:30" json:"phone"`
	Gender            string   `gorm:"size:10" json:"gender"`
	Address           string   `gorm:"size:255" json:"address"`
	City              string   `gorm:"size:100" json:"city"`
	Country           string   `gorm:"size:100" json:"country"`
	ProfilePicture    string   `gorm:"size:255" json:"profilePicture"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
