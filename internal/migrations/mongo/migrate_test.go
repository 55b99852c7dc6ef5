package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"portcall/internal/berths/repository"
)

func TestCollections_MatchRepository(t *testing.T) {
	defs := Collections()
	require.Contains(t, defs, repository.CollectionName)
	assert.Equal(t, BerthsCollection, repository.CollectionName)
}

func TestBerthsIndexes_CoverCategoryListing(t *testing.T) {
	require.Len(t, BerthsIndexes, 1)
	keys, ok := BerthsIndexes[0].Keys.(bson.D)
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "cargo_category", Value: 1}, {Key: "_id", Value: 1}}, keys)
}

func TestBerthValidator_RequiresVersion(t *testing.T) {
	schema, ok := Collections()[BerthsCollection].Validator["$jsonSchema"].(bson.M)
	require.True(t, ok)
	required, ok := schema["required"].([]string)
	require.True(t, ok)
	assert.Contains(t, required, "version")
	assert.Contains(t, required, "booked_periods")
}
