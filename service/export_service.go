package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"lawwatch-backend/storage"
)

// Export artifact names consumed by the downstream CMS importer.
const (
	ExportFileEPA    = "epa.json"
	ExportFileFR     = "fr.json"
	ExportFileFRNews = "fr_news.json"
)

// ExportService renders document batches into the importer's envelope and
// writes them through the configured store.
type ExportService struct {
	store storage.Store
}

// NewExportService creates a new export service
func NewExportService(store storage.Store) *ExportService {
	return &ExportService{store: store}
}

// documentEnvelope is the wire shape the importer expects: every batch is
// wrapped in a single "documents" array.
type documentEnvelope struct {
	Documents interface{} `json:"documents"`
}

// Export marshals the documents into the importer envelope and saves the
// artifact under the given name.
func (s *ExportService) Export(ctx context.Context, name string, documents interface{}) error {
	data, err := json.MarshalIndent(documentEnvelope{Documents: documents}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export %s: %w", name, err)
	}

	if err := s.store.Save(ctx, name, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save export %s: %w", name, err)
	}
	return nil
}
