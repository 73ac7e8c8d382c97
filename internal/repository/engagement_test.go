package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestEngagementRepository_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	insertQuery := regexp.QuoteMeta(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`)

	t.Run("First like creates a row", func(t *testing.T) {
		mock.ExpectExec(insertQuery).
			WithArgs(1, 10).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := repo.Like(ctx, 1, 10)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Repeat like is a no-op", func(t *testing.T) {
		mock.ExpectExec(insertQuery).
			WithArgs(1, 10).
			WillReturnResult(sqlmock.NewResult(0, 0))

		created, err := repo.Like(ctx, 1, 10)
		assert.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEngagementRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	deleteQuery := regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)

	t.Run("Existing like removed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(deleteQuery).
			WithArgs(1, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		deleted, err := repo.Unlike(ctx, 1, 10)
		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing like reports not deleted", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(deleteQuery).
			WithArgs(1, 10).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		deleted, err := repo.Unlike(ctx, 1, 10)
		assert.NoError(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEngagementRepository_Retweet(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	insertQuery := regexp.QuoteMeta(
		`INSERT INTO retweets (user_id, post_id, created_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`)

	mock.ExpectExec(insertQuery).
		WithArgs(2, 10).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Retweet(ctx, 2, 10)
	assert.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEngagementRepository_Unretweet(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "retweets" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(2, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Unretweet(ctx, 2, 10)
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
