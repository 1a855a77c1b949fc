// Package dataset charge des transactions depuis un fichier CSV.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"rfm-segments/pkg/models"
)

// Options contrôle la lecture du CSV.
type Options struct {
	// Delimiter ; 0 = détection parmi ',', ';', '\t'.
	Delimiter rune
	// MaxRows limite le nombre de lignes lues ; 0 = illimité.
	MaxRows int
}

// LoadCSV lit un CSV dont la première ligne donne les noms de colonnes.
func LoadCSV(path string, opt Options) (models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Table{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, opt)
}

// ReadCSV lit un CSV depuis r.
func ReadCSV(r io.Reader, opt Options) (models.Table, error) {
	br := bufio.NewReader(r)
	if opt.Delimiter == 0 {
		head, _ := br.Peek(4096)
		opt.Delimiter = sniffDelimiter(string(head))
	}

	cr := csv.NewReader(br)
	cr.Comma = opt.Delimiter
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.Table{}, fmt.Errorf("csv: empty file")
		}
		return models.Table{}, fmt.Errorf("csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	t := models.Table{Columns: header}
	for opt.MaxRows == 0 || len(t.Rows) < opt.MaxRows {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Table{}, fmt.Errorf("csv row %d: %w", len(t.Rows)+2, err)
		}
		row := make([]any, len(rec))
		for i, v := range rec {
			row[i] = strings.TrimSpace(v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// sniffDelimiter choisit le séparateur le plus fréquent sur la première ligne.
func sniffDelimiter(sample string) rune {
	line, _, _ := strings.Cut(sample, "\n")
	best, bestN := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
