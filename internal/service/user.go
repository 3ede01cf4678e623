package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/logger"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
)

type UserService interface {
	List(page, itemPerPage int) ([]model.User, *Meta, error)
	Get(username string) (*model.User, error)
	UpdateInfo(username string, in UserInfoInput) (*model.User, error)
	UpdatePassword(username, currentPassword, newPassword string) error
	Delete(username string) error
}

type UserInfoInput struct {
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

type userService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserService(db *gorm.DB, log *logger.Logger) UserService {
	return &userService{db: db, log: log.WithComponent("user_service")}
}

func (s *userService) List(page, itemPerPage int) ([]model.User, *Meta, error) {
	page, itemPerPage = normalizePage(page, itemPerPage)

	var total int64
	if err := s.db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "count users", err)
	}

	var users []model.User
	err := s.db.Order("id asc").
		Limit(itemPerPage).
		Offset((page - 1) * itemPerPage).
		Find(&users).Error
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "list users", err)
	}
	return users, newMeta(page, itemPerPage, total), nil
}

func (s *userService) Get(username string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "fetch user", err)
	}
	return &user, nil
}

func (s *userService) UpdateInfo(username string, in UserInfoInput) (*model.User, error) {
	user, err := s.Get(username)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		var count int64
		if err := s.db.Model(&model.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "check email", err)
		}
		if count > 0 {
			return nil, apperr.New(apperr.Conflict, "email is already taken")
		}
		user.Email = in.Email
	}
	user.AvatarURL = in.AvatarURL

	if err := s.db.Save(user).Error; err != nil {
		s.log.Error("User update failed", "username", username, "error", err)
		return nil, apperr.Wrap(apperr.Internal, "update user", err)
	}
	return user, nil
}

func (s *userService) UpdatePassword(username, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperr.New(apperr.Invalid, "new password is required")
	}

	user, err := s.Get(username)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperr.New(apperr.Unauthorized, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "hash password", err)
	}

	res := s.db.Model(&model.User{}).Where("username = ?", username).Update("password_hash", string(hash))
	if res.Error != nil {
		s.log.Error("Password update failed", "username", username, "error", res.Error)
		return apperr.Wrap(apperr.Internal, "update password", res.Error)
	}
	return nil
}

func (s *userService) Delete(username string) error {
	if _, err := s.Get(username); err != nil {
		return err
	}

	res := s.db.Where("username = ?", username).Delete(&model.User{})
	if res.Error != nil {
		s.log.Error("User delete failed", "username", username, "error", res.Error)
		return apperr.Wrap(apperr.Internal, "delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		s.log.Error("User delete affected no rows", "username", username)
		return apperr.New(apperr.Internal, "user delete affected no rows")
	}
	return nil
}
