package models

import (
	"time"
)

// Comment belongs to one post and one user. PublishDate is the sort key for
// comment listings.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	PublishDate time.Time `gorm:"autoCreateTime;index" json:"publishDate"`
	OwnerID     uint      `gorm:"not null;index" json:"ownerId"`
	PostID      uint      `gorm:"not null;index" json:"postId"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Post        *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
