// Package report exporte les résultats RFM (JSON, CSV, terminal).
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"rfm-segments/pkg/models"

	"github.com/google/uuid"
)

// Envelope est le document JSON exporté pour une exécution.
type Envelope struct {
	RunID       string                    `json:"run_id"`
	GeneratedAt string                    `json:"generated_at"`
	Source      string                    `json:"source,omitempty"`
	Labeling    string                    `json:"labeling"`
	Customers   []models.ClassifiedRecord `json:"customers"`
	Segments    []models.SegmentSummary   `json:"segments"`
}

// NewEnvelope horodate le résultat et lui attribue un identifiant d'exécution.
func NewEnvelope(res *models.Result, source, labeling string) Envelope {
	return Envelope{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      source,
		Labeling:    labeling,
		Customers:   res.Customers,
		Segments:    res.Segments,
	}
}

// ExportJSON écrit data en JSON indenté, en créant le dossier si besoin.
func ExportJSON(filename string, data any) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// CSVHeader reprend les colonnes de la table classée.
var CSVHeader = []string{"id", "Recency", "Frequency", "Monetary", "R", "F", "M", "RFM_Score", "RFM_Segment", "Segment_Name"}

// ExportCSV écrit une ligne par client.
func ExportCSV(filename string, customers []models.ClassifiedRecord) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	for _, c := range customers {
		rec := []string{
			c.ID,
			strconv.Itoa(c.Recency),
			strconv.Itoa(c.Frequency),
			strconv.FormatFloat(c.Monetary, 'f', -1, 64),
			c.R.String(),
			c.F.String(),
			c.M.String(),
			strconv.Itoa(c.Score),
			c.Segment,
			string(c.SegmentName),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// TimestampedFilename construit <dir>/<name>_<YYYYMMDD_HHMMSS>.<ext>.
func TimestampedFilename(baseDir, name, ext string) string {
	t := time.Now().Format("20060102_150405")
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s.%s", name, t, ext))
}
