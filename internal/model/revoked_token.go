package model

import "time"

// RevokedToken 已注销的 JWT（按 jti 记录），只增不删
type RevokedToken struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	JTI       string `gorm:"column:jti;type:varchar(200);uniqueIndex;not null"`
	RevokedAt time.Time
}

func (RevokedToken) TableName() string { return "revoked_tokens" }
