package dbmysql

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intrachat/internal/common"
)

func TestNotificationCreate(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `notifications`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewNotificationRepository(db)
	err := repo.Create(context.Background(), &Notification{
		ID:       "n1",
		UserID:   "alice",
		Body:     "maintenance tonight",
		Severity: common.SeverityInfo,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationUnread_OldestFirst(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	// catch-up replay order comes straight from this query
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notifications` WHERE user_id = ? AND `read` = ? ORDER BY created_at ASC")).
		WithArgs("alice", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "body"}).
			AddRow("n1", "alice", "first").
			AddRow("n2", "alice", "second"))

	repo := NewNotificationRepository(db)
	notifications, err := repo.Unread(context.Background(), "alice")

	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "n1", notifications[0].ID)
	assert.Equal(t, "n2", notifications[1].ID)
}

func TestMarkAsRead(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notifications` WHERE id = ? AND user_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "read"}).
			AddRow("n1", "alice", false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `notifications` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewNotificationRepository(db)
	err := repo.MarkAsRead(context.Background(), "n1", "alice")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAsRead_AlreadyReadIsNoOp(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	// monotonic flag: no second write
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notifications` WHERE id = ? AND user_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "read"}).
			AddRow("n1", "alice", true))

	repo := NewNotificationRepository(db)
	err := repo.MarkAsRead(context.Background(), "n1", "alice")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAsRead_WrongRecipient(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notifications` WHERE id = ? AND user_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewNotificationRepository(db)
	err := repo.MarkAsRead(context.Background(), "n1", "mallory")

	assert.Error(t, err)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestNotificationUnreadCount(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `notifications` WHERE user_id = ? AND `read` = ?")).
		WithArgs("alice", false).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(4))

	repo := NewNotificationRepository(db)
	count, err := repo.UnreadCount(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
