package service

import (
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/logger"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type NewsletterService interface {
	Subscribe(email string) error
	List(page, itemPerPage int) ([]model.Subscriber, *Meta, error)
}

type newsletterService struct {
	db    *gorm.DB
	email EmailService
	log   *logger.Logger
}

func NewNewsletterService(db *gorm.DB, email EmailService, log *logger.Logger) NewsletterService {
	return &newsletterService{db: db, email: email, log: log.WithComponent("newsletter_service")}
}

// Subscribe records the address and sends a confirmation mail best-effort.
// Subscribing twice is a no-op.
func (s *newsletterService) Subscribe(email string) error {
	if !emailPattern.MatchString(email) {
		return apperr.New(apperr.Invalid, "invalid email address")
	}

	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Subscriber{Email: email})
	if res.Error != nil {
		s.log.Error("Subscriber insert failed", "error", res.Error)
		return apperr.Wrap(apperr.Internal, "insert subscriber", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil
	}

	go func() {
		err := s.email.Send(email, "Newsletter subscription confirmed",
			"Thanks for subscribing! You will now receive news about our latest dishes and offers.")
		if err != nil {
			s.log.Warn("Confirmation email failed", "email", email, "error", err)
		}
	}()
	return nil
}

func (s *newsletterService) List(page, itemPerPage int) ([]model.Subscriber, *Meta, error) {
	page, itemPerPage = normalizePage(page, itemPerPage)

	var total int64
	if err := s.db.Model(&model.Subscriber{}).Count(&total).Error; err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "count subscribers", err)
	}

	var subscribers []model.Subscriber
	err := s.db.Order("id asc").
		Limit(itemPerPage).
		Offset((page - 1) * itemPerPage).
		Find(&subscribers).Error
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "list subscribers", err)
	}
	return subscribers, newMeta(page, itemPerPage, total), nil
}
