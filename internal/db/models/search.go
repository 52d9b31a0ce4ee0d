package models

import (
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// searchSeparator joins the fields of a search document so a match cannot span two fields.
const searchSeparator = "\x1f"

// FoldSearch case folds s with full Unicode folding, e.g. "Élan" and "ÉLAN" both become "élan".
// Search documents and search queries must be folded the same way.
func FoldSearch(s string) string {
	return cases.Fold().String(strings.ReplaceAll(s, searchSeparator, " "))
}

func searchDocument(fields ...string) string {
	folded := make([]string, len(fields))
	for i, f := range fields {
		folded[i] = FoldSearch(f)
	}

	return strings.Join(folded, searchSeparator)
}

// SearchDocument returns the folded title, description and location.
func (e *Event) SearchDocument() string {
	return searchDocument(e.Title, e.Description, e.Location)
}

// SearchDocument returns the folded title, content and author.
func (s *Story) SearchDocument() string {
	return searchDocument(s.Title, s.Content, s.Author)
}

// SearchDocument returns the folded title, content and tags.
func (p *BlogPost) SearchDocument() string {
	return searchDocument(p.Title, p.Content, p.Tags)
}

// SearchDocument returns the folded title and description.
func (r *Resource) SearchDocument() string {
	return searchDocument(r.Title, r.Description)
}

// BeforeSave refreshes the search document.
func (s *Story) BeforeSave(_ *gorm.DB) error {
	s.SearchText = s.SearchDocument()

	return nil
}

// BeforeSave refreshes the search document.
func (p *BlogPost) BeforeSave(_ *gorm.DB) error {
	p.SearchText = p.SearchDocument()

	return nil
}

// BeforeSave refreshes the search document.
func (r *Resource) BeforeSave(_ *gorm.DB) error {
	r.SearchText = r.SearchDocument()

	return nil
}
