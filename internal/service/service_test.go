package service

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/logger"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.User{},
		&model.Subscriber{},
	))
	return db
}

func testLogger() *logger.Logger { return logger.New("test") }

func seedProduct(t *testing.T, db *gorm.DB, slug string, price, quantity int64) *model.Product {
	t.Helper()

	p := &model.Product{
		Slug:     slug,
		Name:     slug,
		Price:    price,
		Quantity: quantity,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func productQuantity(t *testing.T, db *gorm.DB, slug string) int64 {
	t.Helper()

	var p model.Product
	require.NoError(t, db.Where("slug = ?", slug).First(&p).Error)
	return p.Quantity
}

// fakeEmail records sent mail for assertions.
type fakeEmail struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmail) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeEmail) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
