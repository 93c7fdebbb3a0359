package repository

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NodeRepository checks the Drupal node table for already-published
// documents.
type NodeRepository struct {
	db *pgxpool.Pool
}

// NewNodeRepository creates a new node repository. A nil pool is allowed;
// existence checks then report false so nothing is skipped.
func NewNodeRepository(db *pgxpool.Pool) *NodeRepository {
	return &NodeRepository{db: db}
}

// TitleExists reports whether a node with the exact title is already
// published. Errors report false; re-processing a document is cheaper
// than silently dropping one.
func (r *NodeRepository) TitleExists(ctx context.Context, title string) bool {
	if r.db == nil {
		return false
	}

	var count int
	query := `SELECT COUNT(*) FROM node_field_data WHERE title = $1`
	if err := r.db.QueryRow(ctx, query, title).Scan(&count); err != nil {
		log.Printf("Warning: title existence check failed for %q: %v", title, err)
		return false
	}
	return count > 0
}
