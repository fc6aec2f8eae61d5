package models

import "gorm.io/gorm"

// User represents a registered Stratbook account.
type User struct {
	ID                string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserName          string `json:"userName" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email             string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password          string `json:"-" gorm:"type:varchar(255)" validate:"required,min=8"` // Hash only, never serialized
	MailConfirmed     bool   `json:"mailConfirmed" gorm:"default:false"`
	CompletedTutorial bool   `json:"completedTutorial" gorm:"default:false"`
	gorm.Model               // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
