package contact

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"studio-backend/internal/domain/contact"
	"studio-backend/pkg/telegram"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Notifier delivers the contact notification. Satisfied by
// *telegram.Bot; nil disables notifications.
type Notifier interface {
	Send(text string) error
}

var _ Notifier = (*telegram.Bot)(nil)

type Handler struct {
	db  *gorm.DB
	bot Notifier
}

func NewHandler(db *gorm.DB, bot Notifier) *Handler {
	return &Handler{db: db, bot: bot}
}

type CreateContactRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	Surname   string `json:"surname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// sweep drops submissions past the retention window. Runs inline on
// every contact read and write; there is no background scheduler.
func (h *Handler) sweep() {
	cutoff := contact.RetentionCutoff(time.Now())
	if err := h.db.Where("created_at < ?", cutoff).Delete(&contact.ContactMessage{}).Error; err != nil {
		log.Printf("contact sweep failed: %v", err)
	}
}

// ------------------------------
// POST /api/contact
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := contact.ContactMessage{
		FirstName: req.FirstName,
		Surname:   req.Surname,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
	}
	if err := h.db.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message", "details": err.Error()})
		return
	}

	h.sweep()

	// Best-effort: a dead bot must not fail the submission.
	if h.bot != nil {
		text := fmt.Sprintf("New contact request\n\nName: %s %s\nEmail: %s\nPhone: %s\n\n%s",
			req.FirstName, req.Surname, req.Email, req.Phone, req.Message)
		go func() {
			if err := h.bot.Send(text); err != nil {
				log.Printf("contact notification failed: %v", err)
			}
		}()
	}

	c.JSON(http.StatusCreated, msg)
}

// ------------------------------
// GET /api/contact
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	h.sweep()

	var list []contact.ContactMessage
	if err := h.db.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, list)
}
