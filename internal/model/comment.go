package model

import "time"

// Comment 评论；作者和帖子都有外键约束
type Comment struct {
	ID        string    `gorm:"primaryKey;column:comment_id;type:varchar(16)"`
	Body      string    `gorm:"type:varchar(140);not null"`
	Timestamp time.Time `gorm:"index:idx_comment_post_ts,priority:2"`
	AuthorID  string    `gorm:"type:varchar(16);index:idx_comment_author;not null"`
	PostID    string    `gorm:"type:varchar(16);index:idx_comment_post_ts,priority:1;not null"`

	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Post   *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string { return "comments" }
