package calculator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"rfm-segments/pkg/models"
)

const quartiles = 4

// LabelScheme fixe le sens des étiquettes attribuées aux bins.
type LabelScheme int

const (
	// ValueScheme : 4 = meilleur client sur les trois axes
	// (plus récent, plus fréquent, plus dépensier).
	ValueScheme LabelScheme = iota
	// LegacyScheme : étiquetage du package d'origine. Recency bins croissants → 1..4,
	// Frequency/Monetary bins croissants → 4..1.
	LegacyScheme
)

func (s LabelScheme) String() string {
	if s == LegacyScheme {
		return "legacy"
	}
	return "value"
}

// ParseLabelScheme accepte "value" (ou vide) et "legacy".
func ParseLabelScheme(s string) (LabelScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "value":
		return ValueScheme, nil
	case "legacy":
		return LegacyScheme, nil
	}
	return 0, fmt.Errorf("unknown labeling %q (want value|legacy)", s)
}

var (
	ascending  = [quartiles]models.Quartile{1, 2, 3, 4}
	descending = [quartiles]models.Quartile{4, 3, 2, 1}
)

// labels retourne, pour R, F, M, l'étiquette de chaque bin (bin 0 = plus petites valeurs).
func (s LabelScheme) labels() (r, f, m [quartiles]models.Quartile) {
	if s == LegacyScheme {
		return ascending, descending, descending
	}
	return descending, ascending, ascending
}

// EncodeQuartiles classe chaque métrique en 4 bins d'effectifs égaux (à 1 près).
// Le classement est par rang : tri stable sur la valeur, les ex aequo gardent
// l'ordre d'entrée, bin = floor(4*rang/n).
func EncodeQuartiles(metrics []models.CustomerMetrics, scheme LabelScheme) ([]models.EncodedRecord, error) {
	recency := make([]float64, len(metrics))
	frequency := make([]float64, len(metrics))
	monetary := make([]float64, len(metrics))
	for i, m := range metrics {
		recency[i] = float64(m.Recency)
		frequency[i] = float64(m.Frequency)
		monetary[i] = m.Monetary
	}

	rl, fl, ml := scheme.labels()
	rBins, err := rankBins("Recency", recency)
	if err != nil {
		return nil, err
	}
	fBins, err := rankBins("Frequency", frequency)
	if err != nil {
		return nil, err
	}
	mBins, err := rankBins("Monetary", monetary)
	if err != nil {
		return nil, err
	}

	out := make([]models.EncodedRecord, len(metrics))
	for i, m := range metrics {
		out[i] = models.EncodedRecord{
			CustomerMetrics: m,
			R:               rl[rBins[i]],
			F:               fl[fBins[i]],
			M:               ml[mBins[i]],
		}
	}
	return out, nil
}

// rankBins retourne l'indice de bin (0..3) de chaque valeur.
func rankBins(column string, values []float64) ([]int, error) {
	distinct := map[float64]struct{}{}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidInput(StageEncode, column, "customer %d: %v is not a finite number", i+1, v)
		}
		distinct[v] = struct{}{}
	}
	if len(distinct) < quartiles {
		return nil, insufficientData(StageEncode, column,
			"%d distinct values, need at least %d", len(distinct), quartiles)
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	n := len(values)
	bins := make([]int, n)
	for rank, i := range order {
		bins[i] = rank * quartiles / n
	}
	return bins, nil
}
