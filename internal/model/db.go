package model

import "time"

type Account struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:64;uniqueIndex;not null"`
	Password  string `gorm:"size:128;not null"` // bcrypt hash
	CreatedAt time.Time
}

type Session struct {
	Token     string `gorm:"primaryKey;size:64;not null"`
	Username  string `gorm:"size:64;index;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
}

type Upload struct {
	ID uint `gorm:"primaryKey"`
	// owner
	Username string `gorm:"size:64;index;not null"`
	// timestamp-prefixed, unique within the file store
	Filename  string    `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"index"`
}

type Purchase struct {
	ID         uint   `gorm:"primaryKey"`
	Username   string `gorm:"size:64;index;not null"`
	Filename   string `gorm:"size:255;not null"`
	Quantity   int    `gorm:"not null"`
	Address    string `gorm:"size:255;not null"`
	PostalCode string `gorm:"size:32;not null"`
	City       string `gorm:"size:128;not null"`
	// JSON-encoded {x,y,z} in cm
	ScaledDimensions string `gorm:"size:255;not null"`
	CreatedAt        time.Time
}
