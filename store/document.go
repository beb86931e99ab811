package store

import (
	"context"
)

// Document is the object representing an uploaded medical document.
// Text extraction happens upstream; only the extracted text is stored here.
type Document struct {
	ID        int32
	UID       string
	UserID    int32
	CreatedTs int64
	Title     string
	Kind      string
	Text      string
}

// FindDocument is the find condition for documents.
type FindDocument struct {
	UserID *int32
	Limit  *int
}

// CreateDocument creates a new document record.
func (s *Store) CreateDocument(ctx context.Context, create *Document) (*Document, error) {
	create.UID = ensureUID(create.UID)
	return s.driver.CreateDocument(ctx, create)
}

// ListDocuments lists documents with filter, newest first.
func (s *Store) ListDocuments(ctx context.Context, find *FindDocument) ([]*Document, error) {
	return s.driver.ListDocuments(ctx, find)
}
