package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchValidTopicsWithoutDatabase(t *testing.T) {
	repo := NewTopicRepository(nil)

	topics := repo.FetchValidTopics(context.Background())
	assert.Equal(t, FallbackTopics(), topics)
}

func TestFallbackTopicsAreSorted(t *testing.T) {
	topics := FallbackTopics()
	assert.IsIncreasing(t, topics)
	assert.Contains(t, topics, "Hazardous Waste")
}

func TestTitleExistsWithoutDatabase(t *testing.T) {
	repo := NewNodeRepository(nil)
	assert.False(t, repo.TitleExists(context.Background(), "EPA Enforcement - Acme Corp"))
}
