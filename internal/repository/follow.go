// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"chirp/internal/cache"
	"chirp/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph operations.
// Follow and Unfollow report whether they changed anything so handlers
// can distinguish a fresh edge from a repeat request.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID uint) (bool, error)
	Unfollow(ctx context.Context, followerID, followingID uint) (bool, error)
	Followers(ctx context.Context, userID uint, viewerID uint, limit, offset int) ([]*models.User, int64, error)
	Following(ctx context.Context, userID uint, viewerID uint, limit, offset int) ([]*models.User, int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followingID uint) (bool, error) {
	// ON CONFLICT DO NOTHING makes the toggle idempotent under races.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, following_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (follower_id, following_id) DO NOTHING`,
		followerID, followingID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateUser(ctx, followingID)
		cache.InvalidateUser(ctx, followerID)
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateUser(ctx, followingID)
		cache.InvalidateUser(ctx, followerID)
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint, viewerID uint, limit, offset int) ([]*models.User, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows f ON f.follower_id = users.id").
		Where("f.following_id = ?", userID)

	return r.listUsers(base, viewerID, limit, offset)
}

func (r *followRepository) Following(ctx context.Context, userID uint, viewerID uint, limit, offset int) ([]*models.User, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows f ON f.following_id = users.id").
		Where("f.follower_id = ?", userID)

	return r.listUsers(base, viewerID, limit, offset)
}

func (r *followRepository) listUsers(base *gorm.DB, viewerID uint, limit, offset int) ([]*models.User, int64, error) {
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	selectQuery := "users.*, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id) as followers_count, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) as following_count"
	if viewerID != 0 {
		base = base.Select(selectQuery+", EXISTS(SELECT 1 FROM follows WHERE follows.following_id = users.id AND follows.follower_id = ?) as followed_by_me", viewerID)
	} else {
		base = base.Select(selectQuery + ", false as followed_by_me")
	}

	// newest-joined accounts first, not edge creation order
	var users []*models.User
	if err := base.
		Order("users.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}
