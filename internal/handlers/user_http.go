package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/service"
)

type UserHTTP struct {
	S service.UserService
}

func NewUserHTTP(s service.UserService) *UserHTTP { return &UserHTTP{S: s} }

func (h *UserHTTP) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	itemPerPage := queryInt(c, "itemPerPage", 0)

	users, meta, err := h.S.List(page, itemPerPage)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", gin.H{"users": users, "meta": meta})
}

func (h *UserHTTP) Get(c *gin.Context) {
	username, ok := h.targetUsername(c)
	if !ok {
		return
	}
	user, err := h.S.Get(username)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", user)
}

func (h *UserHTTP) UpdateInfo(c *gin.Context) {
	username, ok := h.targetUsername(c)
	if !ok {
		return
	}

	var in service.UserInfoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}

	user, err := h.S.UpdateInfo(username, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "user updated", user)
}

func (h *UserHTTP) UpdatePassword(c *gin.Context) {
	username, ok := h.targetUsername(c)
	if !ok {
		return
	}

	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}

	if err := h.S.UpdatePassword(username, in.CurrentPassword, in.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "password updated", nil)
}

func (h *UserHTTP) Delete(c *gin.Context) {
	username, ok := h.targetUsername(c)
	if !ok {
		return
	}
	if err := h.S.Delete(username); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "user deleted", nil)
}

// targetUsername resolves the :username param and lets non-admins act only on
// their own account.
func (h *UserHTTP) targetUsername(c *gin.Context) (string, bool) {
	username := c.Param("username")
	claims := currentClaims(c)
	if claims == nil {
		respondStatus(c, http.StatusUnauthorized, "login required")
		return "", false
	}
	if claims.Role != model.RoleAdmin && claims.Username != username {
		respondStatus(c, http.StatusForbidden, "cannot act on another user's account")
		return "", false
	}
	return username, true
}
