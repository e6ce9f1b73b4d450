package model

import "time"

// User 用户；注册时会同时写入一条自关注边
type User struct {
	ID           string  `gorm:"primaryKey;column:user_id;type:varchar(16)"`
	Username     string  `gorm:"type:varchar(80);uniqueIndex;not null"`
	PasswordHash string  `gorm:"type:varchar(256);not null"`
	Weight       int     `gorm:"not null"`
	Gender       string  `gorm:"type:varchar(16);not null"`
	Email        string  `gorm:"type:varchar(128);uniqueIndex;not null"`
	Bio          *string `gorm:"type:varchar(280)"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }
