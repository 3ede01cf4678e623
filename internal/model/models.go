package model

import "time"

// MaxPrice is the largest price the API accepts, in the shop's smallest
// currency unit.
const MaxPrice int64 = 1<<31 - 1

type DeliveryMethod string

const (
	DeliveryShipping DeliveryMethod = "shipping"
	DeliveryPickup   DeliveryMethod = "pickup"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusRefunding  OrderStatus = "refunding"
	OrderStatusAborted    OrderStatus = "aborted"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// ValidOrderStatus reports whether s is one of the six recognized statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipping, OrderStatusCompleted,
		OrderStatusRefunding, OrderStatusAborted, OrderStatusRefunded:
		return true
	}
	return false
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name      string    `gorm:"not null" json:"name"`
	Desc      string    `json:"desc"`
	ImageName string    `json:"imageName"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

type Product struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name       string    `gorm:"not null" json:"name"`
	Categories []string  `gorm:"serializer:json" json:"categories"`
	Desc       string    `json:"desc"`
	Price      int64     `gorm:"not null" json:"price"`
	ImageName  string    `json:"imageName"`
	Quantity   int64     `gorm:"not null" json:"quantity"`
	Priority   int       `json:"priority"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

// ProductSnapshot is the denormalized product state embedded in an order line
// item. It reflects price and name at purchase time, not current catalog state.
type ProductSnapshot struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type OrderItem struct {
	Slug     string          `json:"slug"`
	Quantity int64           `json:"quantity"`
	Note     string          `json:"note,omitempty"`
	Product  ProductSnapshot `json:"product"`
}

// Order embeds its line items as an opaque JSON snapshot rather than foreign
// keys; the snapshot is immutable after creation.
type Order struct {
	OrderID             uint           `gorm:"primaryKey" json:"orderId"`
	DeliveryMethod      DeliveryMethod `gorm:"not null" json:"deliveryMethod"`
	DeliveryAddress     *string        `json:"deliveryAddress"`
	DeliveryTime        *string        `json:"deliveryTime"`
	PickupAt            *string        `json:"pickupAt"`
	DeliveryNote        *string        `json:"deliveryNote"`
	CustomerName        string         `gorm:"not null" json:"customerName"`
	CustomerPhoneNumber string         `gorm:"not null" json:"customerPhoneNumber"`
	Items               []OrderItem    `gorm:"serializer:json" json:"items"`
	Status              OrderStatus    `gorm:"not null;default:processing" json:"status"`
	CreatedAt           time.Time      `json:"createdAt"`
}

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password_hash;not null" json:"-"`
	Role      string    `gorm:"not null;default:member" json:"role"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

type Subscriber struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"subscribedAt"`
}
