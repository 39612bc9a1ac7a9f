package webui

import (
	"html/template"

	"booksearch/internal/search"
)

// collectView keeps the last status and list for a single request.
type collectView struct {
	status  string
	records []search.BookRecord
}

func (v *collectView) SetStatus(text string) { v.status = text }

func (v *collectView) RenderList(records []search.BookRecord) { v.records = records }

type pageData struct {
	Lang   string
	Query  string
	Status string
	List   template.HTML
}
