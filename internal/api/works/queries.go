package works

import (
	"studio-backend/internal/domain/works"

	"gorm.io/gorm"
)

func workByProjectID(db *gorm.DB, projectID string) *gorm.DB {
	return db.Where("project_id = ?", projectID)
}

func worksByCategory(db *gorm.DB, category string) *gorm.DB {
	q := db.Model(&works.Work{})
	if category != works.CategoryAll {
		q = q.Where("category = ?", category)
	}
	return q
}
