package notification

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestWorkerPoolDispatch(t *testing.T) {
	db, _ := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{})

	wp.Dispatch("gym-1")

	select {
	case job := <-wp.Jobs():
		assert.Equal(t, "gym-1", job)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPoolDispatchDropsWhenFull(t *testing.T) {
	db, _ := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{})

	// No worker is draining the queue; the second dispatch must not block.
	wp.Dispatch("gym-1")
	done := make(chan struct{})
	go func() {
		wp.Dispatch("gym-2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
}

func TestWorkerPoolNotifiesSubscribers(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	mock.ExpectQuery(`SELECT .* FROM "push_subscriptions" JOIN subscription_gym_mapping`).
		WithArgs("gym-1").
		WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "created_at"}).
			AddRow("https://push.example/sub-1", "p256dh-key", "auth-key", time.Now()))
	mock.ExpectQuery(`SELECT "name" FROM "gyms"`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Downtown"))

	sent := make(chan []byte, 1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			sent <- payload
			return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(strings.NewReader(""))}, nil
		},
	}

	wp.notifyGymSubscribers(context.Background(), "gym-1")

	select {
	case payload := <-sent:
		assert.Contains(t, string(payload), "Downtown")
		assert.Contains(t, string(payload), "free spot")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the notification to be sent")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerPoolDeletesExpiredSubscription(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	mock.ExpectQuery(`SELECT .* FROM "push_subscriptions" JOIN subscription_gym_mapping`).
		WithArgs("gym-1").
		WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "created_at"}).
			AddRow("https://push.example/expired", "p256dh-key", "auth-key", time.Now()))
	mock.ExpectQuery(`SELECT "name" FROM "gyms"`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Downtown"))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "push_subscriptions"`).
		WithArgs("https://push.example/expired").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusGone, Body: io.NopCloser(strings.NewReader(""))}, nil
		},
	}

	wp.notifyGymSubscribers(context.Background(), "gym-1")

	assert.NoError(t, mock.ExpectationsWereMet())
}
