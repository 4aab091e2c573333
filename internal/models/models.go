package models

import (
	"time"
)

// User is a registered identity. Email is the authentication key.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"        json:"id"`
	Name         string    `gorm:"not null"                        json:"name"`
	Surname      string    `gorm:"not null"                        json:"surname"`
	Email        string    `gorm:"uniqueIndex;not null"            json:"email"`
	PasswordHash string    `gorm:"column:password;not null"        json:"-"`
	Created      time.Time `gorm:"autoCreateTime;not null"         json:"created"`
	Modified     time.Time `gorm:"autoUpdateTime;not null"         json:"modified"`
}

type Tracker struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Title       string    `gorm:"not null"                  json:"title"`
	Description string    `json:"description"`
	URL         string    `gorm:"column:url"                json:"url"`
	UserID      uint      `gorm:"index;not null"            json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Created     time.Time `gorm:"autoCreateTime;not null"   json:"created"`
	Modified    time.Time `gorm:"autoUpdateTime;not null"   json:"modified"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Text      string    `gorm:"not null"                  json:"text"`
	TrackerID uint      `gorm:"index;not null"            json:"tracker_id"`
	Tracker   *Tracker  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Created   time.Time `gorm:"autoCreateTime;not null"   json:"created"`
}

type Attachment struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	TrackerID   uint      `gorm:"index;not null"            json:"tracker_id"`
	Tracker     *Tracker  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Filename    string    `gorm:"not null"                  json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `gorm:"not null"                  json:"size"`
	StorageKey  string    `gorm:"uniqueIndex;not null"      json:"storage_key"`
	Created     time.Time `gorm:"autoCreateTime;not null"   json:"created"`
}

// All lists every model for AutoMigrate, parents first.
func All() []any {
	return []any{&User{}, &Tracker{}, &Comment{}, &Attachment{}}
}
