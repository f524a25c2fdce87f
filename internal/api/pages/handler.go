package pages

import (
	"errors"
	"net/http"

	"studio-backend/internal/domain/pages"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type CreatePageRequest struct {
	Page     string                    `json:"page" binding:"required"`
	PageType string                    `json:"pageType" binding:"required"`
	Content  map[string]datatypes.JSON `json:"content" binding:"required"`
}

type UpdatePageRequest struct {
	Content map[string]datatypes.JSON `json:"content" binding:"required"`
}

func missingLangs(content map[string]datatypes.JSON) []string {
	var missing []string
	for _, lang := range pages.Langs {
		if len(content[lang]) == 0 {
			missing = append(missing, lang)
		}
	}
	return missing
}

// ------------------------------
// POST /api/pages
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if missing := missingLangs(req.Content); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required for languages az, en, ru"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&pages.Page{}).Where("name = ?", req.Page).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errPageExists
		}

		p := pages.Page{Name: req.Page, PageType: req.PageType}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		for lang, content := range req.Content {
			row := pages.PageI18n{PageID: p.ID, Lang: lang, Content: content}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, errPageExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Page already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": req.Page, "pageType": req.PageType})
}

var errPageExists = errors.New("page exists")

// ------------------------------
// GET /api/pages/:page?lang=
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	lang := c.Query("lang")
	if !pages.ValidReadLang(lang) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language. Valid values: az, en, ru, tr"})
		return
	}

	var p pages.Page
	if err := h.db.Where("name = ?", c.Param("page")).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}

	var row pages.PageI18n
	err := h.db.Where("page_id = ? AND lang = ?", p.ID, lang).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found for this language"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     p.Name,
		"pageType": p.PageType,
		"content":  row.Content,
	})
}

// ------------------------------
// PUT /api/pages/:page (wholesale content replacement)
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var p pages.Page
		if err := tx.Where("name = ?", c.Param("page")).First(&p).Error; err != nil {
			return err
		}

		if err := tx.Where("page_id = ?", p.ID).Delete(&pages.PageI18n{}).Error; err != nil {
			return err
		}
		for lang, content := range req.Content {
			row := pages.PageI18n{PageID: p.ID, Lang: lang, Content: content}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return tx.Model(&p).Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
