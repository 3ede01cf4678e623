package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
)

func strptr(s string) *string { return &s }

func pickupInput(items ...model.OrderItem) CreateOrderInput {
	return CreateOrderInput{
		DeliveryMethod:      string(model.DeliveryPickup),
		CustomerName:        "Nguyen Van A",
		CustomerPhoneNumber: "0901234567",
		PickupAt:            strptr("main store"),
		Items:               items,
	}
}

func item(slug string, quantity, price int64) model.OrderItem {
	return model.OrderItem{
		Slug:     slug,
		Quantity: quantity,
		Product:  model.ProductSnapshot{Name: slug, Price: price},
	}
}

func newOrderService(t *testing.T) (OrderService, *gorm.DB) {
	db := newTestDB(t)
	return NewOrderService(db, testLogger()), db
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 50000, 5)

	order, err := svc.Create(pickupInput(item("p1", 3, 50000)))
	require.NoError(t, err)

	assert.NotZero(t, order.OrderID)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)
	assert.EqualValues(t, 2, productQuantity(t, db, "p1"))
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 50000, 2)

	// submitting the same stale cart twice yields the same conflict, with no
	// side effects either time
	for i := 0; i < 2; i++ {
		_, err := svc.Create(pickupInput(item("p1", 3, 50000)))
		require.Error(t, err)
		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
		assert.EqualValues(t, 2, productQuantity(t, db, "p1"))
	}

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderPriceMismatch(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 50000, 5)

	_, err := svc.Create(pickupInput(item("p1", 1, 45000)))
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.EqualValues(t, 5, productQuantity(t, db, "p1"))
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.Create(pickupInput(item("nope", 1, 100)))
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestCreateOrderAtomicity(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 100, 10)
	seedProduct(t, db, "p2", 200, 1)

	// p1 has stock, p2 does not; nothing may be decremented
	_, err := svc.Create(pickupInput(item("p1", 2, 100), item("p2", 5, 200)))
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	assert.EqualValues(t, 10, productQuantity(t, db, "p1"))
	assert.EqualValues(t, 1, productQuantity(t, db, "p2"))

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 100, 10)

	valid := func() CreateOrderInput { return pickupInput(item("p1", 1, 100)) }

	cases := map[string]func(*CreateOrderInput){
		"missing customer name":     func(in *CreateOrderInput) { in.CustomerName = "" },
		"missing phone number":      func(in *CreateOrderInput) { in.CustomerPhoneNumber = "" },
		"missing delivery method":   func(in *CreateOrderInput) { in.DeliveryMethod = "" },
		"unknown delivery method":   func(in *CreateOrderInput) { in.DeliveryMethod = "drone" },
		"pickup without pickupAt":   func(in *CreateOrderInput) { in.PickupAt = nil },
		"empty items":               func(in *CreateOrderInput) { in.Items = nil },
		"item without slug":         func(in *CreateOrderInput) { in.Items[0].Slug = "" },
		"item with zero quantity":   func(in *CreateOrderInput) { in.Items[0].Quantity = 0 },
		"shipping without address": func(in *CreateOrderInput) {
			in.DeliveryMethod = string(model.DeliveryShipping)
			in.DeliveryAddress = nil
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid()
			mutate(&in)
			_, err := svc.Create(in)
			require.Error(t, err)
			assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
		})
	}

	// validation fails before the transaction opens; nothing is written
	assert.EqualValues(t, 10, productQuantity(t, db, "p1"))
}

func TestCreateOrderShipping(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 100, 10)

	in := pickupInput(item("p1", 1, 100))
	in.DeliveryMethod = string(model.DeliveryShipping)
	in.PickupAt = nil
	in.DeliveryAddress = strptr("12 Ly Thuong Kiet, Hanoi")

	order, err := svc.Create(in)
	require.NoError(t, err)
	require.NotNil(t, order.DeliveryAddress)
	assert.Equal(t, "12 Ly Thuong Kiet, Hanoi", *order.DeliveryAddress)
}

func TestOrderIDMonotonic(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 100, 100)

	var last uint
	for i := 0; i < 3; i++ {
		order, err := svc.Create(pickupInput(item("p1", 1, 100)))
		require.NoError(t, err)
		assert.Greater(t, order.OrderID, last)
		last = order.OrderID
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 100, 10)

	order, err := svc.Create(pickupInput(item("p1", 1, 100)))
	require.NoError(t, err)

	completed := model.OrderStatusCompleted
	require.NoError(t, svc.Update(order.OrderID, &completed))

	// all transitions are allowed, including going back from completed
	processing := model.OrderStatusProcessing
	require.NoError(t, svc.Update(order.OrderID, &processing))

	got, err := svc.Get(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, got.Status)

	bogus := model.OrderStatus("teleported")
	err = svc.Update(order.OrderID, &bogus)
	require.Error(t, err)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))

	err = svc.Update(99999, &completed)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// nil status is an existence check only
	require.NoError(t, svc.Update(order.OrderID, nil))
}

func TestDeleteOrder(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 100, 10)

	order, err := svc.Create(pickupInput(item("p1", 4, 100)))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(order.OrderID))

	// hard delete, no cascading restock
	assert.EqualValues(t, 6, productQuantity(t, db, "p1"))

	err = svc.Delete(order.OrderID)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestRestoreProductQuantity(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 100, 10)

	order, err := svc.Create(pickupInput(item("p1", 3, 100)))
	require.NoError(t, err)
	require.EqualValues(t, 7, productQuantity(t, db, "p1"))

	err = svc.RestoreProductQuantity(order.OrderID)
	require.Error(t, err)
	assert.Equal(t, apperr.Precondition, apperr.KindOf(err))

	aborted := model.OrderStatusAborted
	require.NoError(t, svc.Update(order.OrderID, &aborted))

	require.NoError(t, svc.RestoreProductQuantity(order.OrderID))
	assert.EqualValues(t, 10, productQuantity(t, db, "p1"))

	// restore is not idempotent: a second call re-adds the stock
	require.NoError(t, svc.RestoreProductQuantity(order.OrderID))
	assert.EqualValues(t, 13, productQuantity(t, db, "p1"))
}

func TestRestoreSkipsDeletedProducts(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 100, 10)
	seedProduct(t, db, "p2", 200, 10)

	order, err := svc.Create(pickupInput(item("p1", 2, 100), item("p2", 2, 200)))
	require.NoError(t, err)

	require.NoError(t, db.Where("slug = ?", "p2").Delete(&model.Product{}).Error)

	refunded := model.OrderStatusRefunded
	require.NoError(t, svc.Update(order.OrderID, &refunded))

	require.NoError(t, svc.RestoreProductQuantity(order.OrderID))
	assert.EqualValues(t, 10, productQuantity(t, db, "p1"))
}

func TestRestoreNotFound(t *testing.T) {
	svc, _ := newOrderService(t)

	err := svc.RestoreProductQuantity(4242)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestListOrdersPagination(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 100, 100)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(pickupInput(item("p1", 1, 100)))
		require.NoError(t, err)
	}

	orders, meta, err := svc.List(1, 2)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.EqualValues(t, 5, meta.TotalItems)
	assert.True(t, meta.IsFirstPage)
	assert.False(t, meta.IsLastPage)
	assert.Nil(t, meta.PrevPage)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 2, *meta.NextPage)

	// newest first
	assert.Greater(t, orders[0].OrderID, orders[1].OrderID)

	orders, meta, err = svc.List(3, 2)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.True(t, meta.IsLastPage)
	require.NotNil(t, meta.PrevPage)
	assert.Equal(t, 2, *meta.PrevPage)
	assert.Nil(t, meta.NextPage)
}

func TestOrderItemsSnapshotRoundTrip(t *testing.T) {
	svc, db := newOrderService(t)
	seedProduct(t, db, "p1", 100, 10)

	it := item("p1", 2, 100)
	it.Note = "less spicy"
	order, err := svc.Create(pickupInput(it))
	require.NoError(t, err)

	got, err := svc.Get(order.OrderID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p1", got.Items[0].Slug)
	assert.Equal(t, "less spicy", got.Items[0].Note)
	assert.EqualValues(t, 100, got.Items[0].Product.Price)
}
