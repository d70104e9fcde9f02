package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/database"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()
	mock.ExpectQuery("FROM events WHERE id = \\$1").WithArgs(id).WillReturnError(pgx.ErrNoRows)

	_, err := NewRepository(mock).GetByID(context.Background(), id)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateDuplicateSlug(t *testing.T) {
	mock := newMock(t)
	args := make([]interface{}, 19)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectExec("INSERT INTO events").WithArgs(args...).WillReturnError(&pgconn.PgError{Code: "23505"})

	e := &models.Event{ID: uuid.New(), Slug: "a-12345678", Status: models.StatusPending}
	err := NewRepository(mock).Create(context.Background(), e)
	assert.ErrorIs(t, err, database.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListFiltersByStatus(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM events WHERE 1=1 AND status = \\$1 ORDER BY created_at, seq").
		WithArgs("approved").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	list, err := NewRepository(mock).List(context.Background(), ListFilter{Status: models.StatusApproved})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryAppendSubscriberUnknownEvent(t *testing.T) {
	mock := newMock(t)
	s := &models.Subscriber{ID: uuid.New(), EventID: uuid.New(), Name: "Ali", WhatsApp: "+212600000000", CreatedAt: time.Now()}
	mock.ExpectExec("INSERT INTO event_subscribers").
		WithArgs(s.ID, s.EventID, s.Name, s.WhatsApp, s.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := NewRepository(mock).AppendSubscriber(context.Background(), s)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepositoryUpdateStatusGuardRollsBack(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM events WHERE id = \\$1 FOR UPDATE").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("approved"))
	mock.ExpectRollback()

	_, err := NewRepository(mock).UpdateStatus(context.Background(), id, models.StatusRejected, time.Now(),
		func(from models.Status) error { return checkTransition(from, models.StatusRejected) })
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateStatusMissingRow(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM events").WithArgs(id).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := NewRepository(mock).UpdateStatus(context.Background(), id, models.StatusApproved, time.Now(), nil)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.False(t, errors.Is(err, database.ErrDuplicate))
}
