package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

var appointmentColumns = []string{
	"id", "user_id", "service_id", "staff_id", "start_time", "end_time", "status", "price",
	"created_at", "service_name", "service_duration", "staff_name", "staff_role",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO appointments .* RETURNING id, created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), now))

	appt := &domain.Appointment{
		UserID:    uuid.New(),
		ServiceID: uuid.New(),
		StaffID:   uuid.New(),
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		Status:    domain.StatusConfirmed,
		Price:     5000,
	}

	created, err := repo.Create(context.Background(), appt)
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key"})

	_, err := repo.Create(context.Background(), &domain.Appointment{Status: domain.StatusConfirmed})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM appointments a LEFT JOIN services s`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	id, user, service, staff := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT a.id, .* FROM appointments a`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).AddRow(
			id.String(), user.String(), service.String(), staff.String(),
			start, start.Add(time.Hour), "confirmed", int64(8000), start,
			"カット", 60, "佐藤", "スタイリスト",
		))

	appt, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, appt.ID)
	assert.Equal(t, staff, appt.StaffID)
	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	assert.Equal(t, int64(8000), appt.Price)
	assert.Equal(t, "カット", appt.ServiceName)
	assert.Equal(t, "佐藤", appt.StaffName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ForUpdateInsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`WHERE .*a.staff_id = .*a.status <> .* ORDER BY a.start_time ASC FOR UPDATE OF a`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	from := time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)
	list, err := repo.List(ctx, domain.AppointmentsFilter{
		From:      &from,
		To:        ptr.Ptr(from.AddDate(0, 0, 1)),
		StaffID:   ptr.Ptr(uuid.New()),
		ForUpdate: true,
	})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_NoLockOutsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(`WHERE a.user_id = \$1 ORDER BY a.start_time DESC`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err := repo.List(context.Background(), domain.AppointmentsFilter{
		UserID:           &userID,
		IncludeCancelled: true,
		NewestFirst:      true,
		ForUpdate:        true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE appointments SET status`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE appointments SET status`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.StatusCompleted)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
