package model

import (
	"time"
)

// Follow 关注关系（A 关注 B）
// 复合主键 (follower_id, followee_id)，每对至多一条；followee_id 单独建索引用于查粉丝
type Follow struct {
	FollowerID string `gorm:"primaryKey;type:varchar(16)"`
	FolloweeID string `gorm:"primaryKey;type:varchar(16);index:idx_follow_followee"`
	CreatedAt  time.Time

	Follower *User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnDelete:CASCADE"`
	Followee *User `gorm:"foreignKey:FolloweeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Follow) TableName() string { return "follows" }
