package works

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CategoryInterior = "interior"
	CategoryExterior = "exterior"
	CategoryBusiness = "business"

	// CategoryAll is accepted as a list filter only, never stored.
	CategoryAll = "all"
)

// Langs are the languages every work must carry text for.
var Langs = []string{"az", "en", "ru"}

func ValidCategory(c string) bool {
	switch c {
	case CategoryInterior, CategoryExterior, CategoryBusiness:
		return true
	}
	return false
}

func ValidLang(lang string) bool {
	for _, l := range Langs {
		if l == lang {
			return true
		}
	}
	return false
}

type Work struct {
	ID string `gorm:"type:uuid;primaryKey" json:"-"`

	// ProjectID is the externally assigned identifier used in URLs.
	ProjectID string `gorm:"not null;uniqueIndex" json:"projectId"`

	Area     float64 `gorm:"not null" json:"area"`
	Category string  `gorm:"not null;index" json:"category"`

	// Images is an ordered JSON array of stored file paths.
	Images datatypes.JSON `gorm:"not null" json:"images"`

	I18n []WorkI18n `gorm:"foreignKey:WorkID;references:ID;constraint:OnDelete:CASCADE;" json:"i18n,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Work) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// ImageList decodes the stored image array. A corrupt column yields an
// empty list rather than an error; the write paths only ever store
// well-formed arrays.
func (w *Work) ImageList() []string {
	var list []string
	if len(w.Images) > 0 {
		_ = json.Unmarshal(w.Images, &list)
	}
	return list
}

func ImageListJSON(paths []string) datatypes.JSON {
	if paths == nil {
		paths = []string{}
	}
	raw, _ := json.Marshal(paths)
	return datatypes.JSON(raw)
}
