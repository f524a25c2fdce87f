package contact

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RetentionDays is how long contact submissions are kept. Older rows
// are swept inline on every contact read or write.
const RetentionDays = 30

type ContactMessage struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	FirstName string `gorm:"not null" json:"firstName"`
	Surname   string `gorm:"not null" json:"surname"`
	Email     string `gorm:"not null" json:"email"`
	Phone     string `gorm:"not null" json:"phone"`
	Message   string `gorm:"not null" json:"message"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func RetentionCutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -RetentionDays)
}
