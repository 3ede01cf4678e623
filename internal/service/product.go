package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/logger"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
)

type ProductService interface {
	List(page, itemPerPage int) ([]model.Product, *Meta, error)
	Get(slug string) (*model.Product, error)
	Create(in ProductInput, imageName string) (*model.Product, error)
	Update(slug string, in ProductInput, imageName string) (*model.Product, error)
	Delete(slug string) error
}

type ProductInput struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Desc       string   `json:"desc"`
	Price      int64    `json:"price"`
	Quantity   int64    `json:"quantity"`
	Priority   int      `json:"priority"`
}

func (in ProductInput) validate() error {
	if in.Name == "" {
		return apperr.New(apperr.Invalid, "product name is required")
	}
	if in.Price < 0 || in.Price > model.MaxPrice {
		return apperr.New(apperr.Invalid, "product price is out of range")
	}
	if in.Quantity < 0 {
		return apperr.New(apperr.Invalid, "product quantity cannot be negative")
	}
	return nil
}

type productService struct {
	db     *gorm.DB
	images *ImageStore
	log    *logger.Logger
}

func NewProductService(db *gorm.DB, images *ImageStore, log *logger.Logger) ProductService {
	return &productService{db: db, images: images, log: log.WithComponent("product_service")}
}

func (s *productService) List(page, itemPerPage int) ([]model.Product, *Meta, error) {
	page, itemPerPage = normalizePage(page, itemPerPage)

	var total int64
	if err := s.db.Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "count products", err)
	}

	var products []model.Product
	err := s.db.Order("priority desc, created_at desc").
		Limit(itemPerPage).
		Offset((page - 1) * itemPerPage).
		Find(&products).Error
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "list products", err)
	}
	return products, newMeta(page, itemPerPage, total), nil
}

func (s *productService) Get(slug string) (*model.Product, error) {
	var product model.Product
	if err := s.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "fetch product", err)
	}
	return &product, nil
}

func (s *productService) Create(in ProductInput, imageName string) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	productSlug, err := uniqueSlug(s.db, &model.Product{}, in.Name)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Slug:       productSlug,
		Name:       in.Name,
		Categories: in.Categories,
		Desc:       in.Desc,
		Price:      in.Price,
		ImageName:  imageName,
		Quantity:   in.Quantity,
		Priority:   in.Priority,
	}
	if err := s.db.Create(product).Error; err != nil {
		s.log.Error("Product insert failed", "slug", productSlug, "error", err)
		return nil, apperr.Wrap(apperr.Internal, "insert product", err)
	}

	s.log.Info("Product created", "slug", product.Slug)
	return product, nil
}

// Update replaces a product's attributes. The slug stays stable: it is a
// natural key referenced by order snapshots.
func (s *productService) Update(slug string, in ProductInput, imageName string) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.Get(slug)
	if err != nil {
		return nil, err
	}

	oldImage := product.ImageName
	product.Name = in.Name
	product.Categories = in.Categories
	product.Desc = in.Desc
	product.Price = in.Price
	product.Quantity = in.Quantity
	product.Priority = in.Priority
	if imageName != "" {
		product.ImageName = imageName
	}

	if err := s.db.Save(product).Error; err != nil {
		s.log.Error("Product update failed", "slug", slug, "error", err)
		return nil, apperr.Wrap(apperr.Internal, "update product", err)
	}
	if imageName != "" && oldImage != "" && oldImage != imageName {
		s.images.Remove(oldImage)
	}
	return product, nil
}

func (s *productService) Delete(slug string) error {
	product, err := s.Get(slug)
	if err != nil {
		return err
	}

	res := s.db.Where("slug = ?", slug).Delete(&model.Product{})
	if res.Error != nil {
		s.log.Error("Product delete failed", "slug", slug, "error", res.Error)
		return apperr.Wrap(apperr.Internal, "delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		s.log.Error("Product delete affected no rows", "slug", slug)
		return apperr.New(apperr.Internal, "product delete affected no rows")
	}

	s.images.Remove(product.ImageName)
	s.log.Info("Product deleted", "slug", slug)
	return nil
}
