package works

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"studio-backend/internal/domain/works"
	"studio-backend/internal/storage/uploads"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errWorkExists = errors.New("work exists")

type Handler struct {
	db    *gorm.DB
	store *uploads.Storage
}

func NewHandler(db *gorm.DB, store *uploads.Storage) *Handler {
	return &Handler{db: db, store: store}
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// checkForm enforces the per-request upload limits on an already parsed
// multipart form: field-value size, file count, and the per-file gate.
func (h *Handler) checkForm(form *multipart.Form, files []*multipart.FileHeader) error {
	for _, vs := range form.Value {
		for _, v := range vs {
			if len(v) > uploads.MaxFieldSize {
				return &uploads.RejectError{
					Code:    uploads.CodeFieldValue,
					Message: "Form field value too large",
				}
			}
		}
	}
	if len(files) > uploads.MaxFileCount {
		return &uploads.RejectError{
			Code:    uploads.CodeFileCount,
			Message: fmt.Sprintf("At most %d images per request", uploads.MaxFileCount),
		}
	}
	for _, fh := range files {
		if err := h.store.Validate(fh); err != nil {
			return err
		}
	}
	return nil
}

func rejectUpload(c *gin.Context, err error) {
	var re *uploads.RejectError
	if errors.As(err, &re) {
		c.JSON(http.StatusBadRequest, gin.H{"error": re.Message, "code": re.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "details": err.Error()})
}

// saveAll writes every file, cleaning up the ones already written when
// a later one fails.
func (h *Handler) saveAll(files []*multipart.FileHeader) ([]string, error) {
	saved := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := h.store.Save(fh)
		if err != nil {
			h.store.Cleanup(saved)
			return nil, err
		}
		saved = append(saved, p)
	}
	return saved, nil
}

// ------------------------------
// POST /api/portfolio (multipart)
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image is required"})
		return
	}
	if err := h.checkForm(form, files); err != nil {
		rejectUpload(c, err)
		return
	}

	projectID := strings.TrimSpace(formValue(form, "projectId"))
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId is required"})
		return
	}

	title, err := parseRequiredI18n("title", formValue(form, "title"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	description, err := parseRequiredI18n("description", formValue(form, "description"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	location, err := parseRequiredI18n("location", formValue(form, "location"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area, err := strconv.ParseFloat(formValue(form, "area"), 64)
	if err != nil || area <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Area must be a positive number"})
		return
	}

	category := formValue(form, "category")
	if !works.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category. Valid values: interior, exterior, business"})
		return
	}

	saved, err := h.saveAll(files)
	if err != nil {
		rejectUpload(c, err)
		return
	}

	var created works.Work
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := workByProjectID(tx.Model(&works.Work{}), projectID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errWorkExists
		}

		created = works.Work{
			ProjectID: projectID,
			Area:      area,
			Category:  category,
			Images:    works.ImageListJSON(saved),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		for _, lang := range works.Langs {
			row := works.WorkI18n{
				WorkID:      created.ID,
				Lang:        lang,
				Title:       title[lang],
				Description: description[lang],
				Location:    location[lang],
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		h.store.Cleanup(saved)
		if errors.Is(err, errWorkExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Work ID already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create work", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, WorkDTO{
		ProjectID:   projectID,
		Images:      saved,
		Area:        area,
		Category:    category,
		Title:       title,
		Description: description,
		Location:    location,
		CreatedAt:   created.CreatedAt,
		UpdatedAt:   created.UpdatedAt,
	})
}

// ------------------------------
// GET /api/portfolio/:id?lang=
// ------------------------------
func (h *Handler) GetByID(c *gin.Context) {
	var w works.Work
	err := workByProjectID(h.db.Preload("I18n"), c.Param("id")).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work"})
		return
	}

	c.JSON(http.StatusOK, toWorkDTO(&w, c.Query("lang")))
}

// ------------------------------
// GET /api/portfolio?category=
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	category := c.DefaultQuery("category", works.CategoryAll)
	if category != works.CategoryAll && !works.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category. Valid values: interior, exterior, business, all"})
		return
	}

	var list []works.Work
	err := worksByCategory(h.db, category).
		Preload("I18n").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load works"})
		return
	}

	out := make([]WorkDTO, 0, len(list))
	for i := range list {
		out = append(out, toWorkDTO(&list[i], ""))
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// PUT /api/portfolio/:id (multipart, partial merge + append images)
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["images"]
	if err := h.checkForm(form, files); err != nil {
		rejectUpload(c, err)
		return
	}

	patches := make(map[string]map[string]string, 3)
	for _, field := range []string{"title", "description", "location"} {
		raw := formValue(form, field)
		if raw == "" {
			continue
		}
		m, err := parseI18nPatch(field, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patches[field] = m
	}

	var area *float64
	if raw := formValue(form, "area"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Area must be a positive number"})
			return
		}
		area = &v
	}

	category := formValue(form, "category")
	if category != "" && !works.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category. Valid values: interior, exterior, business"})
		return
	}

	saved, err := h.saveAll(files)
	if err != nil {
		rejectUpload(c, err)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var w works.Work
		if err := workByProjectID(tx, c.Param("id")).First(&w).Error; err != nil {
			return err
		}

		// Shallow merge: each provided field updates only the
		// languages it names, leaving the rest untouched.
		for _, lang := range works.Langs {
			updates := map[string]interface{}{}
			if v, ok := patches["title"][lang]; ok {
				updates["title"] = v
			}
			if v, ok := patches["description"][lang]; ok {
				updates["description"] = v
			}
			if v, ok := patches["location"][lang]; ok {
				updates["location"] = v
			}
			if len(updates) == 0 {
				continue
			}
			if err := tx.Model(&works.WorkI18n{}).
				Where("work_id = ? AND lang = ?", w.ID, lang).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		workUpdates := map[string]interface{}{"updated_at": time.Now()}
		if area != nil {
			workUpdates["area"] = *area
		}
		if category != "" {
			workUpdates["category"] = category
		}
		if len(saved) > 0 {
			workUpdates["images"] = works.ImageListJSON(append(w.ImageList(), saved...))
		}
		return tx.Model(&works.Work{}).Where("id = ?", w.ID).Updates(workUpdates).Error
	})

	if err != nil {
		h.store.Cleanup(saved)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update work", "details": err.Error()})
		return
	}

	var w works.Work
	if err := workByProjectID(h.db.Preload("I18n"), c.Param("id")).First(&w).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work"})
		return
	}
	c.JSON(http.StatusOK, toWorkDTO(&w, ""))
}

// ------------------------------
// DELETE /api/portfolio/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	var w works.Work
	if err := workByProjectID(h.db, c.Param("id")).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_id = ?", w.ID).Delete(&works.WorkI18n{}).Error; err != nil {
			return err
		}
		return tx.Delete(&w).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete work", "details": err.Error()})
		return
	}

	// File removal is best-effort once the record is gone.
	h.store.Cleanup(w.ImageList())

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /api/portfolio/:id/images
// ------------------------------
func (h *Handler) DeleteImage(c *gin.Context) {
	var req DeleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var w works.Work
	if err := workByProjectID(h.db, c.Param("id")).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work"})
		return
	}

	list := w.ImageList()
	if len(list) <= 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete the only image of a work"})
		return
	}

	idx := -1
	for i, p := range list {
		if p == req.Image {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	remaining := append(list[:idx:idx], list[idx+1:]...)
	err := h.db.Model(&works.Work{}).Where("id = ?", w.ID).
		Updates(map[string]interface{}{
			"images":     works.ImageListJSON(remaining),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update work", "details": err.Error()})
		return
	}

	// Only drop the file once the record no longer references it.
	if err := h.store.Remove(req.Image); err != nil {
		log.Printf("delete image: failed to remove %s: %v", req.Image, err)
	}

	c.JSON(http.StatusOK, gin.H{"images": remaining})
}
