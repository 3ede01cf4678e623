package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
)

func TestSubscribe(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeEmail{}
	svc := NewNewsletterService(db, mail, testLogger())

	err := svc.Subscribe("not-an-email")
	require.Error(t, err)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))

	require.NoError(t, svc.Subscribe("a@example.com"))

	require.Eventually(t, func() bool { return mail.count() == 1 },
		time.Second, 10*time.Millisecond)

	// re-subscribing is a no-op: one row, no second mail
	require.NoError(t, svc.Subscribe("a@example.com"))

	var count int64
	require.NoError(t, db.Model(&model.Subscriber{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, 1, mail.count())
}

func TestListSubscribers(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsletterService(db, &fakeEmail{}, testLogger())

	for _, addr := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, svc.Subscribe(addr))
	}

	subs, meta, err := svc.List(1, 2)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
	assert.EqualValues(t, 3, meta.TotalItems)
	assert.False(t, meta.IsLastPage)
}
