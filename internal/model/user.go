package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Username string    `gorm:"size:100;unique;not null" json:"username"`
	Email    string    `gorm:"size:100;index" json:"email"`
	Password string    `gorm:"size:100;not null" json:"-"`
	Disabled bool      `gorm:"default:false" json:"disabled"`
	LastSeen time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
