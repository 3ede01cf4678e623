package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/service"
)

type CategoryHTTP struct {
	S      service.CategoryService
	Images *service.ImageStore
}

func NewCategoryHTTP(s service.CategoryService, images *service.ImageStore) *CategoryHTTP {
	return &CategoryHTTP{S: s, Images: images}
}

func (h *CategoryHTTP) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	itemPerPage := queryInt(c, "itemPerPage", 0)

	categories, meta, err := h.S.List(page, itemPerPage)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", gin.H{"categories": categories, "meta": meta})
}

func (h *CategoryHTTP) Get(c *gin.Context) {
	category, err := h.S.Get(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", category)
}

func (h *CategoryHTTP) Create(c *gin.Context) {
	in, imageName, err := h.bindForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	category, err := h.S.Create(in, imageName)
	if err != nil {
		h.Images.Remove(imageName)
		respondError(c, err)
		return
	}
	respondOK(c, "category created", category)
}

func (h *CategoryHTTP) Update(c *gin.Context) {
	in, imageName, err := h.bindForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	category, err := h.S.Update(c.Param("slug"), in, imageName)
	if err != nil {
		h.Images.Remove(imageName)
		respondError(c, err)
		return
	}
	respondOK(c, "category updated", category)
}

func (h *CategoryHTTP) Delete(c *gin.Context) {
	if err := h.S.Delete(c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "category deleted", nil)
}

func (h *CategoryHTTP) bindForm(c *gin.Context) (service.CategoryInput, string, error) {
	var in service.CategoryInput
	in.Name = c.PostForm("name")
	in.Desc = c.PostForm("desc")

	if v := c.PostForm("priority"); v != "" {
		var err error
		if in.Priority, err = strconv.Atoi(v); err != nil {
			return in, "", apperr.New(apperr.Invalid, "invalid priority")
		}
	}

	imageName := ""
	if fh, err := c.FormFile("image"); err == nil {
		if imageName, err = h.Images.Save(fh); err != nil {
			return in, "", err
		}
	}
	return in, imageName, nil
}
