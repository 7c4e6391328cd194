package model

import "time"

// Column widths in characters; services reject longer values.
const (
	TitleMaxLen    = 200
	CategoryMaxLen = 64
)

type Post struct {
	ID       uint64     `gorm:"primaryKey"`
	UserID   uint64     `gorm:"not null;index"`
	Author   User       `gorm:"foreignKey:UserID"`
	Title    string     `gorm:"size:200;not null"`
	Content  string     `gorm:"type:text;not null"`
	Category string     `gorm:"size:64;index"`
	Likes    []PostLike `gorm:"foreignKey:PostID"`
	Comments []Comment  `gorm:"foreignKey:PostID"`

	CreatedAt time.Time `gorm:"index:idx_posts_created,sort:desc"`
	UpdatedAt time.Time
}

// Comment lives in its own table keyed by (post_id, id); newest first is id DESC within a post.
type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index:idx_comments_post_id"`
	UserID    uint64 `gorm:"not null;index"`
	Author    User   `gorm:"foreignKey:UserID"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostLike is one entry of a post's like list; id order is like order.
type PostLike struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	PostID    uint64 `gorm:"not null;uniqueIndex:uk_post_user"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_post_user;index"`
	CreatedAt time.Time
}

func (PostLike) TableName() string {
	return "post_likes"
}
