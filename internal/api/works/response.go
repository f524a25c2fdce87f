package works

import "studio-backend/internal/domain/works"

// toWorkDTO flattens i18n rows into per-field language maps. When lang
// names a language the work actually has, the multilingual fields are
// narrowed to that language's plain values; otherwise the full maps are
// returned. Images, area and category are language-independent.
func toWorkDTO(w *works.Work, lang string) WorkDTO {
	title := make(map[string]string, len(w.I18n))
	description := make(map[string]string, len(w.I18n))
	location := make(map[string]string, len(w.I18n))
	for _, row := range w.I18n {
		title[row.Lang] = row.Title
		description[row.Lang] = row.Description
		location[row.Lang] = row.Location
	}

	dto := WorkDTO{
		ProjectID: w.ProjectID,
		Images:    w.ImageList(),
		Area:      w.Area,
		Category:  w.Category,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}

	if t, ok := title[lang]; works.ValidLang(lang) && ok {
		dto.Title = t
		dto.Description = description[lang]
		dto.Location = location[lang]
		return dto
	}

	dto.Title = title
	dto.Description = description
	dto.Location = location
	return dto
}
