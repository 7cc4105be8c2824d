// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member of the Re-Connect language-exchange network.
// A user is created at signup with IsOnboarded=false and gains full access
// once the onboarding flow has completed their profile.
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	FullName         string         `gorm:"not null" json:"full_name"`
	Email            string         `gorm:"unique;not null" json:"email"`
	Password         string         `gorm:"not null" json:"-"`
	Bio              string         `json:"bio"`
	NativeLanguage   string         `json:"native_language"`
	LearningLanguage string         `json:"learning_language"`
	Location         string         `json:"location"`
	ProfilePic       string         `json:"profile_pic"`
	IsOnboarded      bool           `gorm:"default:false" json:"is_onboarded"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
