// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxPostContentLen bounds post content length.
const MaxPostContentLen = 280

// Post represents a post in the Chirp application.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"author"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Content   string    `gorm:"size:280;not null" json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// RetweetsCount is not persisted; computed at query time
	RetweetsCount int `gorm:"->" json:"retweets_count"`
	// LikedByMe indicates whether the requesting user liked this post (computed)
	LikedByMe bool `gorm:"->" json:"liked_by_me"`
	// RetweetedByMe indicates whether the requesting user retweeted this post (computed)
	RetweetedByMe bool `gorm:"->" json:"retweeted_by_me"`
}
