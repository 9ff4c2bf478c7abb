// Package models defines the persisted records of the vinyl store.
package models

import "time"

// Admin is the single privileged account allowed to mutate the catalog.
// Created once by the seeder; the application never updates or deletes it.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"` // bcrypt, never serialised
	CreatedAt    time.Time `json:"created_at"`
}

// Product is one record in the catalog.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;index" json:"name"`
	Album     string    `gorm:"size:200" json:"album,omitempty"`
	Artist    string    `gorm:"size:200" json:"artist,omitempty"`
	Link      string    `gorm:"size:500" json:"link,omitempty"`
	Price     float64   `gorm:"not null;default:0" json:"price"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CoverURL  string    `gorm:"size:500" json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
