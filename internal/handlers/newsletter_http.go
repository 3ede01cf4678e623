package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/service"
)

type NewsletterHTTP struct {
	S service.NewsletterService
}

func NewNewsletterHTTP(s service.NewsletterService) *NewsletterHTTP {
	return &NewsletterHTTP{S: s}
}

func (h *NewsletterHTTP) Subscribe(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}

	if err := h.S.Subscribe(in.Email); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "subscribed", nil)
}

func (h *NewsletterHTTP) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	itemPerPage := queryInt(c, "itemPerPage", 0)

	subscribers, meta, err := h.S.List(page, itemPerPage)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", gin.H{"subscribers": subscribers, "meta": meta})
}
