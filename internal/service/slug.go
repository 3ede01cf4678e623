package service

import (
	"fmt"
	"math/rand"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
)

const slugAttempts = 3

// uniqueSlug derives a lowercase ASCII slug from name and resolves collisions
// against the given table by suffixing a random numeric token, giving up after
// three attempts.
func uniqueSlug(db *gorm.DB, table any, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", apperr.New(apperr.Invalid, "name cannot be turned into a slug")
	}

	candidate := base
	for i := 0; i < slugAttempts; i++ {
		var count int64
		if err := db.Model(table).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", apperr.Wrap(apperr.Internal, "slug lookup failed", err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, rand.Intn(90000)+10000)
	}
	return "", apperr.New(apperr.Conflict, "could not generate a unique slug")
}
