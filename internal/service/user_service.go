package service

import (
	"context"
	"errors"
	"fmt"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"
	"mime/multipart"
	"path/filepath"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Gender    *string
	Address   *string
	City      *string
	Country   *string
}

func (s *UserService) UpdateProfile(userID uint, upd ProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil && *upd.Email != user.Email {
		existing, err := s.UserRepo.FindByEmail(*upd.Email)
		if err == nil && existing.ID != user.ID {
			return nil, util.ErrEmailRegistered
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *upd.Email
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.Gender != nil {
		user.Gender = *upd.Gender
	}
	if upd.Address != nil {
		user.Address = *upd.Address
	}
	if upd.City != nil {
		user.City = *upd.City
	}
	if upd.Country != nil {
		user.Country = *upd.Country
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadProfilePicture stores the image and records its public URL.
func (s *UserService) UploadProfilePicture(ctx context.Context, userID uint, fileHeader *multipart.FileHeader) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	filename := fmt.Sprintf("avatars/%d-%s%s", userID, model.GenerateUUID(), ext)

	url, err := s.Storage.Upload(ctx, filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	user.ProfilePicture = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}
