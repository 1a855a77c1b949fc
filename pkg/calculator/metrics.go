package calculator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"rfm-segments/pkg/models"

	"github.com/spf13/cast"
)

const day = 24 * time.Hour

// DeriveMetrics regroupe les transactions par client et calcule Recency,
// Frequency et Monetary. La date max sert de référence pour tous les clients.
func DeriveMetrics(table models.Table, fields models.Fields) ([]models.CustomerMetrics, error) {
	txs, err := parseTransactions(table, fields)
	if err != nil {
		return nil, err
	}

	var maxDate time.Time
	for _, tx := range txs {
		if tx.Date.After(maxDate) {
			maxDate = tx.Date
		}
	}

	type agg struct {
		last  time.Time
		count int
		sum   float64
	}
	byID := map[string]*agg{}
	for _, tx := range txs {
		a, ok := byID[tx.CustomerID]
		if !ok {
			a = &agg{last: tx.Date}
			byID[tx.CustomerID] = a
		}
		if tx.Date.After(a.last) {
			a.last = tx.Date
		}
		a.count++
		a.sum += tx.Revenue
	}

	out := make([]models.CustomerMetrics, 0, len(byID))
	for id, a := range byID {
		out = append(out, models.CustomerMetrics{
			ID:        id,
			Recency:   int(maxDate.Sub(a.last) / day),
			Frequency: a.count,
			Monetary:  a.sum,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// parseTransactions valide le schéma puis convertit chaque ligne.
func parseTransactions(table models.Table, fields models.Fields) ([]models.Transaction, error) {
	cols := []string{fields.ID, fields.Date, fields.Revenue}
	idx := make([]int, len(cols))
	for i, name := range cols {
		if name == "" {
			return nil, invalidInput(StageDerive, "", "required field name is empty")
		}
		idx[i] = table.Index(name)
		if idx[i] < 0 {
			return nil, invalidInput(StageDerive, name, "column not found in input")
		}
	}
	if len(table.Rows) == 0 {
		return nil, invalidInput(StageDerive, "", "no transactions")
	}

	txs := make([]models.Transaction, 0, len(table.Rows))
	for n, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return nil, invalidInput(StageDerive, "", "row %d has %d cells, want %d", n+1, len(row), len(table.Columns))
		}
		id, err := cast.ToStringE(row[idx[0]])
		if err != nil || id == "" {
			return nil, invalidInput(StageDerive, fields.ID, "row %d: missing customer id", n+1)
		}
		date, err := parseDate(row[idx[1]])
		if err != nil {
			return nil, invalidInput(StageDerive, fields.Date, "row %d: cannot parse %v as date", n+1, row[idx[1]])
		}
		revenue, err := cast.ToFloat64E(row[idx[2]])
		if err != nil {
			return nil, invalidInput(StageDerive, fields.Revenue, "row %d: cannot parse %v as number", n+1, row[idx[2]])
		}
		if math.IsNaN(revenue) || math.IsInf(revenue, 0) {
			return nil, invalidInput(StageDerive, fields.Revenue, "row %d: %v is not a finite number", n+1, row[idx[2]])
		}
		txs = append(txs, models.Transaction{CustomerID: id, Date: date, Revenue: revenue})
	}
	return txs, nil
}

// parseDate n'accepte que des dates (driver SQL) ou du texte : un entier serait
// lu comme timestamp Unix et masquerait une mauvaise colonne.
func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		return cast.ToTimeE(d)
	}
	return time.Time{}, fmt.Errorf("unsupported date cell %T", v)
}
