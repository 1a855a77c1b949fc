package calculator

import (
	"fmt"
	"time"

	"rfm-segments/pkg/models"
)

var testFields = models.Fields{ID: "customer", Date: "order_date", Revenue: "amount"}

// fixtureTable construit 8 clients C1..C8 : Ci a i achats de i*10,
// son dernier achat est (8-i)*3 jours avant le 2023-03-01.
func fixtureTable() models.Table {
	base := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	t := models.Table{Columns: []string{"order_id", "customer", "order_date", "amount"}}
	n := 0
	for i := 1; i <= 8; i++ {
		last := base.AddDate(0, 0, -(8-i)*3)
		for k := 0; k < i; k++ {
			n++
			t.Rows = append(t.Rows, []any{
				n,
				fmt.Sprintf("C%d", i),
				last.AddDate(0, 0, -k).Format("2006-01-02"),
				float64(i * 10),
			})
		}
	}
	return t
}

func classifiedByID(rows []models.ClassifiedRecord) map[string]models.ClassifiedRecord {
	out := make(map[string]models.ClassifiedRecord, len(rows))
	for _, r := range rows {
		out[r.ID] = r
	}
	return out
}
