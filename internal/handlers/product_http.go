package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/service"
)

type ProductHTTP struct {
	S      service.ProductService
	Images *service.ImageStore
}

func NewProductHTTP(s service.ProductService, images *service.ImageStore) *ProductHTTP {
	return &ProductHTTP{S: s, Images: images}
}

func (h *ProductHTTP) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	itemPerPage := queryInt(c, "itemPerPage", 0)

	products, meta, err := h.S.List(page, itemPerPage)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", gin.H{"products": products, "meta": meta})
}

func (h *ProductHTTP) Get(c *gin.Context) {
	product, err := h.S.Get(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", product)
}

func (h *ProductHTTP) Create(c *gin.Context) {
	in, imageName, err := h.bindForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := h.S.Create(in, imageName)
	if err != nil {
		h.Images.Remove(imageName)
		respondError(c, err)
		return
	}
	respondOK(c, "product created", product)
}

func (h *ProductHTTP) Update(c *gin.Context) {
	in, imageName, err := h.bindForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := h.S.Update(c.Param("slug"), in, imageName)
	if err != nil {
		h.Images.Remove(imageName)
		respondError(c, err)
		return
	}
	respondOK(c, "product updated", product)
}

func (h *ProductHTTP) Delete(c *gin.Context) {
	if err := h.S.Delete(c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "product deleted", nil)
}

// bindForm reads the multipart product form and stores the image, if any.
func (h *ProductHTTP) bindForm(c *gin.Context) (service.ProductInput, string, error) {
	var in service.ProductInput
	in.Name = c.PostForm("name")
	in.Desc = c.PostForm("desc")
	in.Categories = c.PostFormArray("categories")

	var err error
	if v := c.PostForm("price"); v != "" {
		if in.Price, err = strconv.ParseInt(v, 10, 64); err != nil {
			return in, "", apperr.New(apperr.Invalid, "invalid price")
		}
	}
	if v := c.PostForm("quantity"); v != "" {
		if in.Quantity, err = strconv.ParseInt(v, 10, 64); err != nil {
			return in, "", apperr.New(apperr.Invalid, "invalid quantity")
		}
	}
	if v := c.PostForm("priority"); v != "" {
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
