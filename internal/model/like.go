package model

import "time"

// Like 点赞关系，复合主键保证同一用户对同一帖子只有一条
type Like struct {
	UserID    string `gorm:"primaryKey;type:varchar(16)"`
	PostID    string `gorm:"primaryKey;type:varchar(16);index:idx_like_post"`
	CreatedAt time.Time

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Like) TableName() string { return "likes" }
