package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/logger"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
)

type CategoryService interface {
	List(page, itemPerPage int) ([]model.Category, *Meta, error)
	Get(slug string) (*model.Category, error)
	Create(in CategoryInput, imageName string) (*model.Category, error)
	Update(slug string, in CategoryInput, imageName string) (*model.Category, error)
	Delete(slug string) error
}

type CategoryInput struct {
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Priority int    `json:"priority"`
}

type categoryService struct {
	db     *gorm.DB
	images *ImageStore
	log    *logger.Logger
}

func NewCategoryService(db *gorm.DB, images *ImageStore, log *logger.Logger) CategoryService {
	return &categoryService{db: db, images: images, log: log.WithComponent("category_service")}
}

func (s *categoryService) List(page, itemPerPage int) ([]model.Category, *Meta, error) {
	page, itemPerPage = normalizePage(page, itemPerPage)

	var total int64
	if err := s.db.Model(&model.Category{}).Count(&total).Error; err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "count categories", err)
	}

	var categories []model.Category
	err := s.db.Order("priority desc, created_at desc").
		Limit(itemPerPage).
		Offset((page - 1) * itemPerPage).
		Find(&categories).Error
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "list categories", err)
	}
	return categories, newMeta(page, itemPerPage, total), nil
}

func (s *categoryService) Get(slug string) (*model.Category, error) {
	var category model.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "category not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "fetch category", err)
	}
	return &category, nil
}

func (s *categoryService) Create(in CategoryInput, imageName string) (*model.Category, error) {
	if in.Name == "" {
		return nil, apperr.New(apperr.Invalid, "category name is required")
	}

	categorySlug, err := uniqueSlug(s.db, &model.Category{}, in.Name)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		Slug:      categorySlug,
		Name:      in.Name,
		Desc:      in.Desc,
		ImageName: imageName,
		Priority:  in.Priority,
	}
	if err := s.db.Create(category).Error; err != nil {
		s.log.Error("Category insert failed", "slug", categorySlug, "error", err)
		return nil, apperr.Wrap(apperr.Internal, "insert category", err)
	}

	s.log.Info("Category created", "slug", category.Slug)
	return category, nil
}

func (s *categoryService) Update(slug string, in CategoryInput, imageName string) (*model.Category, error) {
	if in.Name == "" {
		return nil, apperr.New(apperr.Invalid, "category name is required")
	}

	category, err := s.Get(slug)
	if err != nil {
		return nil, err
	}

	oldImage := category.ImageName
	category.Name = in.Name
	category.Desc = in.Desc
	category.Priority = in.Priority
	if imageName != "" {
		category.ImageName = imageName
	}

	if err := s.db.Save(category).Error; err != nil {
		s.log.Error("Category update failed", "slug", slug, "error", err)
		return nil, apperr.Wrap(apperr.Internal, "update category", err)
	}
	if imageName != "" && oldImage != "" && oldImage != imageName {
		s.images.Remove(oldImage)
	}
	return category, nil
}

// Delete removes a category. Products keep their category slug lists; the
// association is by value, not foreign key.
func (s *categoryService) Delete(slug string) error {
	category, err := s.Get(slug)
	if err != nil {
		return err
	}

	res := s.db.Where("slug = ?", slug).Delete(&model.Category{})
	if res.Error != nil {
		s.log.Error("Category delete failed", "slug", slug, "error", res.Error)
		return apperr.Wrap(apperr.Internal, "delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		s.log.Error("Category delete affected no rows", "slug", slug)
		return apperr.New(apperr.Internal, "category delete affected no rows")
	}

	s.images.Remove(category.ImageName)
	s.log.Info("Category deleted", "slug", slug)
	return nil
}
