package calculator

import (
	"math"

	"rfm-segments/pkg/models"
)

const (
	minScore = 3
	maxScore = 12
)

// Classify associe un RFM_Score à un segment nommé.
func Classify(score int) models.SegmentName {
	switch {
	case score >= 9:
		return models.CantLoseThem
	case score == 8:
		return models.Champions
	case score == 7:
		return models.Loyal
	case score == 6:
		return models.Potential
	case score == 5:
		return models.Promising
	case score == 4:
		return models.RequiresAttention
	default:
		return models.DemandsActivation
	}
}

// ClassifySegments applique Classify à chaque ligne, ordre conservé.
func ClassifySegments(scored []models.ScoredRecord) ([]models.ClassifiedRecord, error) {
	out := make([]models.ClassifiedRecord, len(scored))
	for i, s := range scored {
		if len(s.Segment) != 3 {
			return nil, schemaMismatch(StageClassify, "RFM_Segment", "customer %s: got %q", s.ID, s.Segment)
		}
		if s.Score < minScore || s.Score > maxScore {
			return nil, schemaMismatch(StageClassify, "RFM_Score", "customer %s: %d out of [%d,%d]", s.ID, s.Score, minScore, maxScore)
		}
		out[i] = models.ClassifiedRecord{ScoredRecord: s, SegmentName: Classify(s.Score)}
	}
	return out, nil
}

// Summarize calcule, par segment présent, les moyennes R/F/M (1 décimale) et l'effectif.
// Les segments sont ordonnés du meilleur au moins bon.
func Summarize(classified []models.ClassifiedRecord) ([]models.SegmentSummary, error) {
	type acc struct {
		recency, frequency, monetary float64
		count                        int
	}
	groups := map[models.SegmentName]*acc{}
	for _, c := range classified {
		if c.SegmentName.Rank() < 0 {
			return nil, schemaMismatch(StageSummarize, "Segment_Name", "customer %s: unknown segment %q", c.ID, c.SegmentName)
		}
		a, ok := groups[c.SegmentName]
		if !ok {
			a = &acc{}
			groups[c.SegmentName] = a
		}
		a.recency += float64(c.Recency)
		a.frequency += float64(c.Frequency)
		a.monetary += c.Monetary
		a.count++
	}

	total := float64(len(classified))
	out := make([]models.SegmentSummary, 0, len(groups))
	for _, name := range models.SegmentNames {
		a, ok := groups[name]
		if !ok {
			continue
		}
		n := float64(a.count)
		out = append(out, models.SegmentSummary{
			Name:          name,
			RecencyMean:   round1(a.recency / n),
			FrequencyMean: round1(a.frequency / n),
			MonetaryMean:  round1(a.monetary / n),
			Count:         a.count,
			Share:         round1(n / total * 100),
		})
	}
	return out, nil
}

// round1 arrondit à 1 décimale, demi au pair (comme numpy).
func round1(x float64) float64 {
	return math.RoundToEven(x*10) / 10
}
