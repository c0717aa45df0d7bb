package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mapadmin/internal/db"
	"mapadmin/internal/model"
)

// MySQL reports zero affected rows for an UPDATE that changes nothing, so
// these run against the mysql dialector.
func newMySQLMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := db.Config()
	cfg.Logger = logger.Discard
	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), cfg)
	require.NoError(t, err)
	return gdb, mock
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestFAQRepository_Save_UnchangedRowsAreNotDuplicated(t *testing.T) {
	gdb, mock := newMySQLMockDB(t)
	repo := NewFAQRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `faq_metadata`").WillReturnResult(sqlmock.NewResult(1, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `faq_categories` WHERE id = \\?").
		WithArgs(7).
		WillReturnRows(countRows(1))
	mock.ExpectExec("UPDATE `faq_categories` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `faq_questions` WHERE id = \\? AND category_id = \\?").
		WithArgs(3, 7).
		WillReturnRows(countRows(1))
	mock.ExpectExec("UPDATE `faq_questions` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	categories := []model.FAQCategory{{
		ID:   7,
		Name: "Billing",
		Questions: []model.FAQQuestion{
			{ID: 3, Question: "How do I pay?", Answer: "By card."},
		},
	}}
	meta := &model.FAQMetadata{Heading: "FAQ"}
	require.NoError(t, repo.Save(context.Background(), meta, categories))

	assert.Equal(t, uint(7), categories[0].ID)
	assert.Equal(t, uint(3), categories[0].Questions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFAQRepository_Save_UnknownIDIsCreated(t *testing.T) {
	gdb, mock := newMySQLMockDB(t)
	repo := NewFAQRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `faq_metadata`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `faq_categories`").
		WithArgs(42).
		WillReturnRows(countRows(0))
	mock.ExpectExec("INSERT INTO `faq_categories`").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	categories := []model.FAQCategory{{ID: 42, Name: "Accounts"}}
	require.NoError(t, repo.Save(context.Background(), &model.FAQMetadata{Heading: "FAQ"}, categories))

	assert.Equal(t, uint(9), categories[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepository_UpdateIcon(t *testing.T) {
	t.Run("same value on existing row", func(t *testing.T) {
		gdb, mock := newMySQLMockDB(t)
		repo := NewSettingRepository(gdb)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `settings` WHERE id = \\?").
			WithArgs(1).
			WillReturnRows(countRows(1))
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `settings` SET `site_icon`=\\?").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		require.NoError(t, repo.UpdateIcon(context.Background(), 1, "/uploads/icon/a.png"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		gdb, mock := newMySQLMockDB(t)
		repo := NewSettingRepository(gdb)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `settings`").
			WithArgs(2).
			WillReturnRows(countRows(0))

		assert.ErrorIs(t, repo.UpdateIcon(context.Background(), 2, "/uploads/icon/a.png"), gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdminRepository_UpdateAvatar_SameValue(t *testing.T) {
	gdb, mock := newMySQLMockDB(t)
	repo := NewAdminRepository(gdb)
	id := uuid.New()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admins` WHERE id = \\?").
		WithArgs(id.String()).
		WillReturnRows(countRows(1))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `admins` SET `avatar`=\\?").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateAvatar(context.Background(), id, "/uploads/avatars/a.png"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
