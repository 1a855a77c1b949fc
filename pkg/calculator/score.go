package calculator

import (
	"sort"

	"rfm-segments/pkg/models"
)

// AggregateScores calcule RFM_Score (somme) et RFM_Segment (concaténation),
// puis trie par RFM_Segment décroissant en ordre de chaînes.
func AggregateScores(encoded []models.EncodedRecord) ([]models.ScoredRecord, error) {
	out := make([]models.ScoredRecord, len(encoded))
	for i, e := range encoded {
		for _, c := range []struct {
			name string
			q    models.Quartile
		}{{"R", e.R}, {"F", e.F}, {"M", e.M}} {
			if !c.q.Valid() {
				return nil, schemaMismatch(StageAggregate, c.name, "customer %s has no quartile label", e.ID)
			}
		}
		out[i] = models.ScoredRecord{
			EncodedRecord: e,
			Score:         int(e.R) + int(e.F) + int(e.M),
			Segment:       e.R.String() + e.F.String() + e.M.String(),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Segment > out[j].Segment })
	return out, nil
}

// TopCustomers retourne les n premières lignes (déjà triées par RFM_Segment).
// n <= 0 retourne tout.
func TopCustomers(classified []models.ClassifiedRecord, n int) []models.ClassifiedRecord {
	if n <= 0 || n > len(classified) {
		n = len(classified)
	}
	out := make([]models.ClassifiedRecord, n)
	copy(out, classified[:n])
	return out
}
