package calculator

import (
	"testing"

	"rfm-segments/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encoded(id string, r, f, m models.Quartile) models.EncodedRecord {
	return models.EncodedRecord{
		CustomerMetrics: models.CustomerMetrics{ID: id, Frequency: 1},
		R:               r,
		F:               f,
		M:               m,
	}
}

func TestAggregateScores(t *testing.T) {
	in := []models.EncodedRecord{
		encoded("a", 1, 1, 1),
		encoded("b", 4, 3, 2),
		encoded("c", 2, 4, 4),
		encoded("d", 4, 3, 2),
		encoded("e", 4, 4, 4),
	}

	got, err := AggregateScores(in)
	require.NoError(t, err)

	var ids, segments []string
	for _, s := range got {
		ids = append(ids, s.ID)
		segments = append(segments, s.Segment)
		assert.Len(t, s.Segment, 3)
		assert.GreaterOrEqual(t, s.Score, 3)
		assert.LessOrEqual(t, s.Score, 12)
	}
	assert.Equal(t, []string{"444", "432", "432", "244", "111"}, segments)
	// tri stable : b avant d
	assert.Equal(t, []string{"e", "b", "d", "c", "a"}, ids)
	assert.Equal(t, 9, got[1].Score)
	assert.Equal(t, 10, got[3].Score)

	// l'entrée n'est pas réordonnée
	assert.Equal(t, "a", in[0].ID)
}

func TestAggregateScores_SchemaMismatch(t *testing.T) {
	_, err := AggregateScores([]models.EncodedRecord{encoded("a", 1, 0, 1)})
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "aggregate_scores: F:")
}

func TestTopCustomers(t *testing.T) {
	rows := []models.ClassifiedRecord{
		{ScoredRecord: models.ScoredRecord{Segment: "444"}},
		{ScoredRecord: models.ScoredRecord{Segment: "333"}},
		{ScoredRecord: models.ScoredRecord{Segment: "111"}},
	}

	assert.Len(t, TopCustomers(rows, 2), 2)
	assert.Equal(t, "444", TopCustomers(rows, 1)[0].Segment)
	assert.Len(t, TopCustomers(rows, 0), 3)
	assert.Len(t, TopCustomers(rows, 10), 3)
	assert.Empty(t, TopCustomers(nil, 5))
}
