package session

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO sessions \(id,token,role,user_id\)`).
		WithArgs("sid-1", "jwt", "User", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	s, err := repo.Create(context.Background(), &domain.Session{ID: "sid-1", Token: "jwt", Role: domain.RoleUser, UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, now, s.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, token, role, user_id, created_at, updated_at FROM sessions WHERE id = \$1`).
		WithArgs("sid-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "role", "user_id", "created_at", "updated_at"}).
			AddRow("sid-1", "jwt", "Admin", int64(9), now, now))

	s, err := repo.GetByID(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, s.Role)
	assert.Equal(t, int64(9), s.UserID)
	assert.True(t, s.IsAdmin())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM sessions`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "role", "user_id", "created_at", "updated_at"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1`).
		WithArgs("sid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1`).
		WithArgs("sid-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "sid-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "sid-1"), ErrSessionNotFound)
}

func TestRepository_UpdateIdentity(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE sessions SET role = \$1, user_id = \$2, updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs("Admin", int64(3), "sid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateIdentity(context.Background(), "sid-1", domain.RoleAdmin, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
