package service

import (
	"errors"
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	AdminRepo *repository.AdminRepository
	Cfg       *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, adminRepo *repository.AdminRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		AdminRepo: adminRepo,
		Cfg:       cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.Role = model.RoleUser
	if user.SubscriptionLevel == "" {
		user.SubscriptionLevel = model.LevelBasic
	}
	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	// Google-only accounts have no password hash.
	if user.Password == "" {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user.ID, user.Email, user.Role, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// AdminLogin authenticates against the admin table; admin tokens carry a
// shorter validity than user tokens.
func (s *AuthService) AdminLogin(email, password string) (string, *model.Admin, error) {
	admin, err := s.AdminRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(admin.ID, admin.Email, model.RoleAdmin, s.Cfg.JWT.Secret, s.Cfg.JWT.AdminExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// UpsertGoogleUser links or creates a user from an external Google
// identity and returns a session token for it.
func (s *AuthService) UpsertGoogleUser(googleID, email, firstName, lastName string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByGoogleID(googleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// An existing password account with the same email gets linked.
		user, err = s.UserRepo.FindByEmail(email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &model.User{
				FirstName:         firstName,
				LastName:          lastName,
				Email:             email,
				GoogleID:          googleID,
				Role:              model.RoleUser,
				SubscriptionLevel: model.LevelBasic,
			}
			if err := s.UserRepo.Create(user); err != nil {
				return "", nil, err
			}
		} else if err != nil {
			return "", nil, err
		} else {
			user.GoogleID = googleID
			if err := s.UserRepo.Update(user); err != nil {
				return "", nil, err
			}
		}
	} else if err != nil {
		return "", nil, err
	}

	token, err := util.GenerateJWT(user.ID, user.Email, user.Role, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
