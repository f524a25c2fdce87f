package works

import "time"

type WorkI18n struct {
	WorkID string `gorm:"type:uuid;primaryKey"`
	Lang   string `gorm:"primaryKey"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Location    string `gorm:"not null" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
