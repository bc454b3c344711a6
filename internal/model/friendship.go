package model

import "time"

// Friendship 好友关系表，双向各存一行
type Friendship struct {
	UserID    uint      `gorm:"primaryKey" json:"userId"`
	FriendID  uint      `gorm:"primaryKey" json:"friendId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Friendship) TableName() string {
	return "friendships"
}
