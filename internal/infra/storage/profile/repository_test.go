package profile

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, email, full_name, role FROM profiles WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "role"}).
			AddRow(id.String(), "hanako@example.com", "山田花子", "admin"))

	p, err := NewRepository(db).GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "hanako@example.com", p.Email)
	assert.True(t, p.IsAdmin())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM profiles`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "role"}))

	_, err = NewRepository(db).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
