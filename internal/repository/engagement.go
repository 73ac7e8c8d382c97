// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"chirp/internal/cache"
	"chirp/internal/models"

	"gorm.io/gorm"
)

// EngagementRepository covers like and retweet toggles on posts.
// Each call reports whether a row was actually created or removed.
type EngagementRepository interface {
	Like(ctx context.Context, userID, postID uint) (bool, error)
	Unlike(ctx context.Context, userID, postID uint) (bool, error)
	Retweet(ctx context.Context, userID, postID uint) (bool, error)
	Unretweet(ctx context.Context, userID, postID uint) (bool, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) Like(ctx context.Context, userID, postID uint) (bool, error) {
	return r.insert(ctx,
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID)
}

func (r *engagementRepository) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	return r.deleted(ctx, result, postID)
}

func (r *engagementRepository) Retweet(ctx context.Context, userID, postID uint) (bool, error) {
	return r.insert(ctx,
		`INSERT INTO retweets (user_id, post_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID)
}

func (r *engagementRepository) Unretweet(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Retweet{})
	return r.deleted(ctx, result, postID)
}

// insert runs an ON CONFLICT DO NOTHING upsert, making the toggle
// atomic under concurrent requests for the same pair.
func (r *engagementRepository) insert(ctx context.Context, query string, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(query, userID, postID)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) deleted(ctx context.Context, result *gorm.DB, postID uint) (bool, error) {
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return result.RowsAffected > 0, nil
}
