package repository

import (
	"mcquiz_backend/internal/model"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) FindByID(id uint) (*model.Admin, error) {
	var admin model.Admin
	err := r.DB.First(&admin, id).Error
	return &admin, err
}

func (r *AdminRepository) FindByEmail(email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.DB.Where("email = ?", email).First(&admin).Error
	return &admin, err
}

func (r *AdminRepository) UpdatePassword(email, hashed string) error {
	return r.DB.Model(&model.Admin{}).
		Where("email = ?", email).
		Update("password", hashed).
		Error
}
