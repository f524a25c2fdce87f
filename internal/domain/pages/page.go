package pages

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Langs are the languages a page must be created with.
var Langs = []string{"az", "en", "ru"}

// ReadLangs are the languages a page may be requested in. Turkish
// content is never stored, so requesting it yields a not-found rather
// than a bad-request.
var ReadLangs = []string{"az", "en", "ru", "tr"}

func ValidReadLang(lang string) bool {
	for _, l := range ReadLangs {
		if l == lang {
			return true
		}
	}
	return false
}

type Page struct {
	ID string `gorm:"type:uuid;primaryKey" json:"-"`

	Name     string `gorm:"not null;index" json:"page"`
	PageType string `gorm:"not null" json:"pageType"`

	I18n []PageI18n `gorm:"foreignKey:PageID;references:ID;constraint:OnDelete:CASCADE;" json:"i18n,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PageI18n holds one language's content as an opaque JSON document.
type PageI18n struct {
	PageID string `gorm:"type:uuid;primaryKey"`
	Lang   string `gorm:"primaryKey"`

	Content datatypes.JSON `gorm:"not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
