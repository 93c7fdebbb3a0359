package repository

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TopicRepository reads the environmental-issue taxonomy from the Drupal
// content database.
type TopicRepository struct {
	db *pgxpool.Pool
}

// NewTopicRepository creates a new topic repository. A nil pool is
// allowed; every query then falls back to the compiled-in topic list.
func NewTopicRepository(db *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{db: db}
}

// FallbackTopics returns the compiled-in environmental issue list used
// when the taxonomy table is unreachable.
func FallbackTopics() []string {
	return []string{
		"Automobiles and Trucks",
		"Boats",
		"Chemicals",
		"Construction Equipment",
		"Drinking Water",
		"Hazardous Waste",
		"Oil and Gas",
		"Sewage",
	}
}

// FetchValidTopics returns the environmental-issue taxonomy terms in
// alphabetical order. Database failures degrade to the fallback list so
// a pipeline run never blocks on the CMS.
func (r *TopicRepository) FetchValidTopics(ctx context.Context) []string {
	if r.db == nil {
		log.Printf("Warning: no database connection, using fallback topic list")
		return FallbackTopics()
	}

	query := `
		SELECT name FROM taxonomy_term_field_data
		WHERE vid = 'environmental_issues'
		ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Printf("Warning: failed to query topics, using fallback list: %v", err)
		return FallbackTopics()
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Printf("Warning: failed to scan topic row, using fallback list: %v", err)
			return FallbackTopics()
		}
		topics = append(topics, name)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Warning: topic query failed mid-scan, using fallback list: %v", err)
		return FallbackTopics()
	}
	if len(topics) == 0 {
		return FallbackTopics()
	}
	return topics
}
