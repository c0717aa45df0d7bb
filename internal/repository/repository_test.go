package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mapadmin/internal/db"
	"mapadmin/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := db.Config()
	cfg.Logger = logger.Discard
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), cfg)
	require.NoError(t, err)
	return gdb, mock
}

func TestAdminRepository_FindByEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAdminRepository(gdb)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "admins" WHERE email = \$1 ORDER BY "admins"\."id" LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "password", "role"}).
			AddRow(id.String(), "Ada", "Lovelace", "ada@example.com", "$2a$10$hash", "admin"))

	admin, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, admin.ID)
	assert.Equal(t, "Ada", admin.FirstName)
	assert.Equal(t, "$2a$10$hash", admin.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_FindByEmail_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAdminRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "admins" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"missing", 0, gorm.ErrRecordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb, mock := newMockDB(t)
			repo := NewAdminRepository(gdb)

			mock.ExpectBegin()
			mock.ExpectExec(`DELETE FROM "admins" WHERE id = \$1`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			err := repo.Delete(context.Background(), uuid.New())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPlanRepository_Delete_RemovesFeaturesFirst(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPlanRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "plan_features" WHERE plan_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "plans" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_Delete_MissingPlanRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPlanRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "plan_features"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "plans"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFAQRepository_DeleteCategory(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewFAQRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "faq_questions" WHERE category_id = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "faq_categories" WHERE "faq_categories"\."id" = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCategory(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapPinRepository_DeleteForUser_NotOwned(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewMapPinRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "user_location_pins" WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	pin, err := repo.DeleteForUser(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, pin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimezoneRepository_List(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewTimezoneRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "timezones" ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "abbreviation", "utc_offset", "country"}).
			AddRow(1, "Africa/Cairo", "EET", "+02:00", "EG").
			AddRow(2, "Europe/Berlin", "CET", "+01:00", "DE"))

	zones, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "Africa/Cairo", zones[0].Name)
	assert.Equal(t, "+01:00", zones[1].UTCOffset)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimezoneRepository_Seed_SkipsExistingNames(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewTimezoneRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "timezones" .* ON CONFLICT \("name"\) DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	added, err := repo.Seed(context.Background(), []model.Timezone{
		{Name: "UTC", Abbreviation: "UTC", UTCOffset: "+00:00"},
		{Name: "Africa/Cairo", Abbreviation: "EET", UTCOffset: "+02:00", Country: "EG"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepository_ListNewestFirst(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAuditLogRepository(gdb)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" ORDER BY timestamp DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "admin", "action", "timestamp"}).
			AddRow(uuid.NewString(), "root", "deleted user", now).
			AddRow(uuid.NewString(), "root", "created plan", now.Add(-time.Hour)))

	logs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "deleted user", logs[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}
