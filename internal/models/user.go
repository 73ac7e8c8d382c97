// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the Chirp application.
// Rows are deleted physically; dependent rows are removed by FK cascades.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Username       string    `gorm:"unique;not null" json:"username"`
	FirstName      string    `gorm:"size:30" json:"first_name"`
	LastName       string    `gorm:"size:30" json:"last_name"`
	Password       string    `gorm:"not null" json:"-"`
	Bio            string    `gorm:"size:500" json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	IsStaff        bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt      time.Time `json:"date_joined"`
	UpdatedAt      time.Time `json:"-"`

	// FollowersCount is not persisted; computed at query time
	FollowersCount int `gorm:"->" json:"followers_count"`
	// FollowingCount is not persisted; computed at query time
	FollowingCount int `gorm:"->" json:"following_count"`
	// FollowedByMe indicates whether the requesting user follows this user (computed)
	FollowedByMe bool `gorm:"->" json:"followed_by_me"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
