// Package models defines the persisted entities, the categorized error type
// and the pagination envelope shared across the application.
package models

import (
	"time"
)

// User is a registered author. Email is unique; RegisterDate is set once at
// creation and is the sort key for user listings. Deleting a user cascades to
// their posts and comments.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `json:"title"`
	FirstName    string    `gorm:"not null" json:"firstName"`
	LastName     string    `gorm:"not null" json:"lastName"`
	Gender       string    `json:"gender"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	RegisterDate time.Time `gorm:"autoCreateTime;index" json:"registerDate"`
	Phone        string    `json:"phone"`
	Picture      string    `json:"picture"`
	LocationID   uint      `json:"locationId,omitempty"`
	Location     *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Posts        []Post    `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Comments     []Comment `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// Location is a user's postal address, owned one-to-one by the user row.
type Location struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}
