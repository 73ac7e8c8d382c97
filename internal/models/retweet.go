package models

import (
	"time"
)

// Retweet represents a user's retweet of a post.
// The combination of UserID and PostID must be unique.
type Retweet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_retweet_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_retweet_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
}
