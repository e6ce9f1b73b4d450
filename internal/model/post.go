package model

import "time"

// Post 饮品记录
type Post struct {
	ID                string    `gorm:"primaryKey;column:post_id;type:varchar(16)"`
	Timestamp         time.Time `gorm:"index:idx_post_timestamp"`
	DrinkName         string    `gorm:"type:varchar(32)"`
	Volume            float64   `gorm:"not null"`
	AlcoholPercentage float64   `gorm:"not null"`
	AuthorID          string    `gorm:"type:varchar(16);index:idx_post_author;not null"`

	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string { return "posts" }
