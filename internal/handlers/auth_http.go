package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/service"
)

const sessionCookieMaxAge = 7 * 24 * 3600

type AuthHTTP struct {
	S     service.AuthService
	Users service.UserService
}

func NewAuthHTTP(s service.AuthService, users service.UserService) *AuthHTTP {
	return &AuthHTTP{S: s, Users: users}
}

func (h *AuthHTTP) Register(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}

	user, err := h.S.Register(in.Username, in.Email, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "account created", user)
}

func (h *AuthHTTP) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}

	token, user, err := h.S.Login(in.Username, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	// cookie + JSON token
	c.SetCookie("session", token, sessionCookieMaxAge, "/", "", true, true)
	respondOK(c, "logged in", gin.H{"token": token, "user": user})
}

func (h *AuthHTTP) Logout(c *gin.Context) {
	c.SetCookie("session", "", -1, "/", "", true, true)
	respondOK(c, "logged out", nil)
}

func (h *AuthHTTP) Me(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		respondStatus(c, http.StatusUnauthorized, "login required")
		return
	}
	user, err := h.Users.Get(claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", user)
}
