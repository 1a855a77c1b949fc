package calculator

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"rfm-segments/pkg/models"

	"github.com/schollz/progressbar/v3"
)

const stages = 5

// Run enchaîne les étapes : métriques → quartiles → scores → segments → résumé.
// Aucune donnée n'est partagée entre deux appels.
func Run(table models.Table, cfg models.Config) (*models.Result, error) {
	scheme, err := ParseLabelScheme(cfg.Labeling)
	if err != nil {
		return nil, fmt.Errorf("labeling: %w", err)
	}

	w := cfg.Progress
	if w == nil {
		w = io.Discard
	}
	bar := progressbar.NewOptions(stages,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("rfm"),
		progressbar.OptionClearOnFinish(),
	)
	step := func(name string, start time.Time) {
		bar.Describe(name)
		_ = bar.Add(1)
		slog.Debug("stage done", "stage", name, "elapsed", time.Since(start))
	}

	start := time.Now()
	metrics, err := DeriveMetrics(table, cfg.Fields)
	if err != nil {
		return nil, err
	}
	step(StageDerive, start)
	slog.Debug("metrics derived", "transactions", len(table.Rows), "customers", len(metrics))

	start = time.Now()
	encoded, err := EncodeQuartiles(metrics, scheme)
	if err != nil {
		return nil, err
	}
	step(StageEncode, start)

	start = time.Now()
	scored, err := AggregateScores(encoded)
	if err != nil {
		return nil, err
	}
	step(StageAggregate, start)

	start = time.Now()
	classified, err := ClassifySegments(scored)
	if err != nil {
		return nil, err
	}
	step(StageClassify, start)

	start = time.Now()
	summary, err := Summarize(classified)
	if err != nil {
		return nil, err
	}
	step(StageSummarize, start)

	if cfg.Verbose {
		for _, s := range summary {
			slog.Info("segment", "name", s.Name, "count", s.Count,
				"recency", s.RecencyMean, "frequency", s.FrequencyMean, "monetary", s.MonetaryMean)
		}
	}
	return &models.Result{Customers: classified, Segments: summary}, nil
}
