package models

import (
	"time"
)

// Post is an authored entry. PublishDate is set once at creation and is the
// sort key for post listings. Tags is a many-to-many relation; the API layer
// flattens it to a list of names.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Image       string    `json:"image"`
	Likes       int       `gorm:"not null;default:0" json:"likes"`
	Link        string    `json:"link,omitempty"`
	PublishDate time.Time `gorm:"autoCreateTime;index" json:"publishDate"`
	OwnerID     uint      `gorm:"not null;index" json:"ownerId"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Tags        []Tag     `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Comments    []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// Tag is a shared label, unique by name, created on demand when a post
// references it.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Posts []Post `gorm:"many2many:post_tags" json:"posts,omitempty"`
}
