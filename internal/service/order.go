package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/logger"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
)

type OrderService interface {
	Create(in CreateOrderInput) (*model.Order, error)
	Get(orderID uint) (*model.Order, error)
	List(page, itemPerPage int) ([]model.Order, *Meta, error)
	Update(orderID uint, status *model.OrderStatus) error
	Delete(orderID uint) error
	RestoreProductQuantity(orderID uint) error
}

type CreateOrderInput struct {
	DeliveryMethod      string            `json:"deliveryMethod"`
	CustomerName        string            `json:"customerName"`
	CustomerPhoneNumber string            `json:"customerPhoneNumber"`
	Items               []model.OrderItem `json:"items"`
	DeliveryAddress     *string           `json:"deliveryAddress"`
	DeliveryTime        *string           `json:"deliveryTime"`
	PickupAt            *string           `json:"pickupAt"`
	DeliveryNote        *string           `json:"deliveryNote"`
}

func (in CreateOrderInput) validate() error {
	if in.DeliveryMethod == "" || in.CustomerName == "" || in.CustomerPhoneNumber == "" {
		return apperr.New(apperr.Invalid, "deliveryMethod, customerName and customerPhoneNumber are required")
	}
	method := model.DeliveryMethod(in.DeliveryMethod)
	switch method {
	case model.DeliveryShipping:
		if in.DeliveryAddress == nil || *in.DeliveryAddress == "" {
			return apperr.New(apperr.Invalid, "deliveryAddress is required for shipping orders")
		}
	case model.DeliveryPickup:
		if in.PickupAt == nil || *in.PickupAt == "" {
			return apperr.New(apperr.Invalid, "pickupAt is required for pickup orders")
		}
	default:
		return apperr.New(apperr.Invalid, "unrecognized delivery method")
	}
	if len(in.Items) == 0 {
		return apperr.New(apperr.Invalid, "order must have at least one item")
	}
	for _, it := range in.Items {
		if it.Slug == "" {
			return apperr.New(apperr.Invalid, "order item is missing a product slug")
		}
		if it.Quantity <= 0 {
			return apperr.New(apperr.Invalid, "order item quantity must be positive")
		}
	}
	return nil
}

type orderService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderService(db *gorm.DB, log *logger.Logger) OrderService {
	return &orderService{db: db, log: log.WithComponent("order_service")}
}

// Create validates the submitted cart against live stock and price, decrements
// inventory and persists the order in one transaction. Either the order is
// fully persisted with every referenced product decremented, or nothing is.
//
// Stock is taken with a conditional decrement (quantity >= requested in the
// WHERE clause), so the database enforces the non-negative invariant under
// concurrent placements without relying on isolation level tuning. A stale
// cart, whether insufficient stock or a changed price, is rejected with a
// conflict; the client must refresh its view, not retry blindly.
func (s *orderService) Create(in CreateOrderInput) (*model.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order := &model.Order{
		DeliveryMethod:      model.DeliveryMethod(in.DeliveryMethod),
		DeliveryAddress:     in.DeliveryAddress,
		DeliveryTime:        in.DeliveryTime,
		PickupAt:            in.PickupAt,
		DeliveryNote:        in.DeliveryNote,
		CustomerName:        in.CustomerName,
		CustomerPhoneNumber: in.CustomerPhoneNumber,
		Items:               in.Items,
		Status:              model.OrderStatusProcessing,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		slugs := make([]string, 0, len(in.Items))
		for _, it := range in.Items {
			slugs = append(slugs, it.Slug)
		}

		var products []model.Product
		if err := tx.Where("slug IN ?", slugs).Find(&products).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "fetch products for order", err)
		}
		bySlug := make(map[string]model.Product, len(products))
		for _, p := range products {
			bySlug[p.Slug] = p
		}

		for _, it := range in.Items {
			p, ok := bySlug[it.Slug]
			if !ok {
				return apperr.ErrStale
			}
			if p.Price != it.Product.Price {
				return apperr.ErrStale
			}
		}

		for _, it := range in.Items {
			res := tx.Model(&model.Product{}).
				Where("slug = ? AND quantity >= ?", it.Slug, it.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", it.Quantity))
			if res.Error != nil {
				s.log.Error("Stock decrement failed", "slug", it.Slug, "error", res.Error)
				return apperr.Wrap(apperr.Internal, "decrement product quantity", res.Error)
			}
			if res.RowsAffected == 0 {
				// stock changed under the caller
				return apperr.ErrStale
			}
		}

		if err := tx.Create(order).Error; err != nil {
			s.log.Error("Order insert failed", "error", err)
			return apperr.Wrap(apperr.Internal, "insert order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Order placed", "order_id", order.OrderID, "items", len(order.Items), "customer", order.CustomerName)
	return order, nil
}

func (s *orderService) Get(orderID uint) (*model.Order, error) {
	var order model.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "fetch order", err)
	}
	return &order, nil
}

func (s *orderService) List(page, itemPerPage int) ([]model.Order, *Meta, error) {
	page, itemPerPage = normalizePage(page, itemPerPage)

	var total int64
	if err := s.db.Model(&model.Order{}).Count(&total).Error; err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "count orders", err)
	}

	var orders []model.Order
	err := s.db.Order("order_id desc").
		Limit(itemPerPage).
		Offset((page - 1) * itemPerPage).
		Find(&orders).Error
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "list orders", err)
	}
	return orders, newMeta(page, itemPerPage, total), nil
}

// Update sets an order's status. All transitions between the six statuses are
// allowed; there is no transition graph and no terminal-state protection.
func (s *orderService) Update(orderID uint, status *model.OrderStatus) error {
	if status != nil && !model.ValidOrderStatus(*status) {
		return apperr.New(apperr.Invalid, "invalid order status")
	}

	if _, err := s.Get(orderID); err != nil {
		return err
	}
	if status == nil {
		return nil
	}

	res := s.db.Model(&model.Order{}).Where("order_id = ?", orderID).Update("status", *status)
	if res.Error != nil {
		s.log.Error("Order status update failed", "order_id", orderID, "error", res.Error)
		return apperr.Wrap(apperr.Internal, "update order status", res.Error)
	}
	return nil
}

// Delete removes an order without restoring stock.
func (s *orderService) Delete(orderID uint) error {
	if _, err := s.Get(orderID); err != nil {
		return err
	}

	res := s.db.Delete(&model.Order{}, orderID)
	if res.Error != nil {
		s.log.Error("Order delete failed", "order_id", orderID, "error", res.Error)
		return apperr.Wrap(apperr.Internal, "delete order", res.Error)
	}
	if res.RowsAffected == 0 {
		// existed a moment ago; lost a race with another deleter
		s.log.Error("Order delete affected no rows", "order_id", orderID)
		return apperr.New(apperr.Internal, "order delete affected no rows")
	}
	return nil
}

// RestoreProductQuantity adds each line item's quantity back to its product.
// Only aborted or refunded orders qualify. Products deleted since placement
// are skipped silently. The operation is not idempotent: calling it twice on
// the same order credits the stock twice.
func (s *orderService) RestoreProductQuantity(orderID uint) error {
	order, err := s.Get(orderID)
	if err != nil {
		return err
	}
	if order.Status != model.OrderStatusAborted && order.Status != model.OrderStatusRefunded {
		return apperr.New(apperr.Precondition, "order must be aborted or refunded to restore stock")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, it := range order.Items {
			res := tx.Model(&model.Product{}).
				Where("slug = ?", it.Slug).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", it.Quantity))
			if res.Error != nil {
				s.log.Error("Stock restore failed", "order_id", orderID, "slug", it.Slug, "error", res.Error)
				return apperr.Wrap(apperr.Internal, "restore product quantity", res.Error)
			}
			// RowsAffected == 0 means the product was deleted after the
			// order was placed; nothing to credit.
		}
		return nil
	})
}
