package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
)

const sessionTokenTTL = 7 * 24 * time.Hour

type AuthService interface {
	Register(username, email, password string) (*model.User, error)
	Login(username, password string) (string, *model.User, error)
	ParseToken(token string) (*TokenClaims, error)
}

type TokenClaims struct {
	UserID   uint
	Username string
	Role     string
}

type authService struct {
	db     *gorm.DB
	secret []byte
}

func NewAuthService(db *gorm.DB, secret string) AuthService {
	return &authService{db: db, secret: []byte(secret)}
}

func (a *authService) Register(username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperr.New(apperr.Invalid, "username, email and password are required")
	}

	var existing model.User
	err := a.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return nil, apperr.New(apperr.Conflict, "username or email is already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "look up existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "hash password", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     model.RoleMember,
	}
	if err := a.db.Create(user).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "insert user", err)
	}
	return user, nil
}

func (a *authService) Login(username, password string) (string, *model.User, error) {
	var user model.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		return "", nil, apperr.New(apperr.Unauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.Unauthorized, "invalid credentials")
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"typ":      "session",
		"exp":      time.Now().Add(sessionTokenTTL).Unix(),
	})
	token, err := t.SignedString(a.secret)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.Internal, "sign session token", err)
	}
	return token, &user, nil
}

func (a *authService) ParseToken(token string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, "invalid session", err)
	}
	if claims["typ"] != "session" {
		return nil, apperr.New(apperr.Unauthorized, "invalid token type")
	}
	idFloat, ok := claims["sub"].(float64)
	if !ok {
		return nil, apperr.New(apperr.Unauthorized, "invalid subject claim")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return &TokenClaims{UserID: uint(idFloat), Username: username, Role: role}, nil
}
