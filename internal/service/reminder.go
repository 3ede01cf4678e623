package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron"
	"gorm.io/gorm"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/logger"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
)

// Reminder emails the shop a daily digest of orders that are still processing
// a day after placement.
type Reminder struct {
	db        *gorm.DB
	email     EmailService
	shopEmail string
	log       *logger.Logger
	cron      *cron.Cron
}

func NewReminder(db *gorm.DB, email EmailService, shopEmail string, log *logger.Logger) *Reminder {
	return &Reminder{
		db:        db,
		email:     email,
		shopEmail: shopEmail,
		log:       log.WithComponent("order_reminder"),
		cron:      cron.New(),
	}
}

func (r *Reminder) Start() error {
	if err := r.cron.AddFunc("@midnight", r.run); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

func (r *Reminder) Stop() { r.cron.Stop() }

func (r *Reminder) run() {
	cutoff := time.Now().Add(-24 * time.Hour)

	var stale []model.Order
	err := r.db.Where("status = ? AND created_at < ?", model.OrderStatusProcessing, cutoff).
		Order("order_id asc").
		Find(&stale).Error
	if err != nil {
		r.log.Error("Pending order query failed", "error", err)
		return
	}
	if len(stale) == 0 || r.shopEmail == "" {
		return
	}

	body := fmt.Sprintf("%d order(s) have been processing for more than a day:\n\n", len(stale))
	for _, o := range stale {
		body += fmt.Sprintf("- order #%d for %s (%s), placed %s\n",
			o.OrderID, o.CustomerName, o.CustomerPhoneNumber, o.CreatedAt.Format(time.RFC3339))
	}

	if err := r.email.Send(r.shopEmail, "Pending order reminder", body); err != nil {
		r.log.Warn("Reminder email failed", "error", err)
		return
	}
	r.log.Info("Pending order reminder sent", "count", len(stale))
}
