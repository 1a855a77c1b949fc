package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"rfm-segments/pkg/models"
	"rfm-segments/pkg/palette"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func assertPNG(t *testing.T, path string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, pngMagic), "%s is not a PNG", path)
}

func TestHistograms(t *testing.T) {
	var customers []models.ClassifiedRecord
	for i := 0; i < 20; i++ {
		customers = append(customers, models.ClassifiedRecord{
			ScoredRecord: models.ScoredRecord{EncodedRecord: models.EncodedRecord{
				CustomerMetrics: models.CustomerMetrics{Recency: i * 3, Frequency: 1 + i%5, Monetary: float64(i * i)},
			}},
		})
	}
	path := filepath.Join(t.TempDir(), "rfm_hist.png")

	require.NoError(t, Histograms(customers, path, 10))
	assertPNG(t, path)
}

func TestHistograms_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.png")
	assert.ErrorIs(t, Histograms(nil, path, 10), ErrNoData)

	one := []models.ClassifiedRecord{{}}
	assert.Error(t, Histograms(one, path, 0))
}

func TestSegmentTreemap(t *testing.T) {
	segments := []models.SegmentSummary{
		{Name: models.CantLoseThem, Count: 40, Share: 40},
		{Name: models.Potential, Count: 35, Share: 35},
		{Name: models.DemandsActivation, Count: 25, Share: 25},
	}
	path := filepath.Join(t.TempDir(), "rfm_segments.png")

	require.NoError(t, SegmentTreemap(segments, path, palette.Spectral))
	assertPNG(t, path)
}

func TestSegmentTreemap_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.png")
	assert.ErrorIs(t, SegmentTreemap(nil, path, palette.Spectral), ErrNoData)
	assert.ErrorIs(t, SegmentTreemap([]models.SegmentSummary{{Name: models.Champions}}, path, palette.Spectral), ErrNoData)
}
