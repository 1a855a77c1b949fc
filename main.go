package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rfm-segments/pkg/calculator"
	"rfm-segments/pkg/chart"
	"rfm-segments/pkg/config"
	"rfm-segments/pkg/database"
	"rfm-segments/pkg/dataset"
	"rfm-segments/pkg/logger"
	"rfm-segments/pkg/models"
	"rfm-segments/pkg/palette"
	"rfm-segments/pkg/report"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	configPath := flag.String("config", os.Getenv("RFM_CONFIG"), "Fichier de configuration (yaml/json/toml)")
	source := flag.String("source", "", "CSV des transactions ou DSN (mysql://, mariadb://, postgres://, sqlite://)")
	table := flag.String("table", "", "Table SQL des transactions")
	idField := flag.String("id", "", "Colonne identifiant client")
	dateField := flag.String("date", "", "Colonne date de transaction")
	revenueField := flag.String("revenue", "", "Colonne revenu")
	labeling := flag.String("labeling", "", "Sens des quartiles: value (4 = meilleur) | legacy (étiquettes du package rfm d'origine)")
	outDir := flag.String("out", "", "Dossier de sortie")
	format := flag.String("format", "", "Export: json | csv | none")
	chartsDir := flag.String("charts", "", "Dossier des graphiques PNG (vide = aucun)")
	bins := flag.Int("bins", 0, "Nombre de classes des histogrammes")
	top := flag.Int("top", 0, "Nombre de meilleurs clients affichés")
	logLevel := flag.String("log-level", "", "Niveau de log: debug | info | warn | error")
	verbose := flag.Bool("v", false, "Mode verbeux (barre de progression, détail des segments)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Les flags explicitement passés priment sur fichier et environnement.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source = *source
		case "table":
			cfg.Table = *table
		case "id":
			cfg.Fields.ID = *idField
		case "date":
			cfg.Fields.Date = *dateField
		case "revenue":
			cfg.Fields.Revenue = *revenueField
		case "labeling":
			cfg.Labeling = *labeling
		case "out":
			cfg.Output.Dir = *outDir
		case "format":
			cfg.Output.Format = *format
		case "charts":
			cfg.Charts.Dir = *chartsDir
		case "bins":
			cfg.Charts.Bins = *bins
		case "top":
			cfg.Top = *top
		case "log-level":
			cfg.Log.Level = *logLevel
		case "v":
			cfg.Verbose = *verbose
		}
	})

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Usage: rfm-segments --source orders.csv [--id ... --date ... --revenue ...]: %v", err)
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr); err != nil {
		log.Fatalf("logger: %v", err)
	}
	if cfg.Verbose {
		cfg.Progress = os.Stderr
	}

	start := time.Now()
	ctx := context.Background()
	data, err := loadTable(ctx, &cfg)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	slog.Info("transactions loaded", "source", cfg.Source, "rows", len(data.Rows),
		"id", cfg.Fields.ID, "date", cfg.Fields.Date, "revenue", cfg.Fields.Revenue)

	res, err := calculator.Run(data, cfg)
	if err != nil {
		log.Fatalf("compute: %v", err)
	}
	slog.Info("segmentation done", "customers", len(res.Customers), "segments", len(res.Segments),
		"elapsed", time.Since(start))

	if err := report.RenderSummary(os.Stdout, res.Segments, palette.Spectral); err != nil {
		log.Fatalf("render: %v", err)
	}
	if cfg.Top > 0 {
		if err := report.RenderTop(os.Stdout, calculator.TopCustomers(res.Customers, cfg.Top)); err != nil {
			log.Fatalf("render: %v", err)
		}
	}

	switch cfg.Output.Format {
	case "json":
		path := report.TimestampedFilename(cfg.Output.Dir, "rfm", "json")
		if err := report.ExportJSON(path, report.NewEnvelope(res, cfg.Source, cfg.Labeling)); err != nil {
			log.Fatalf("export: %v", err)
		}
		slog.Info("exported", "path", path)
	case "csv":
		path := report.TimestampedFilename(cfg.Output.Dir, "rfm", "csv")
		if err := report.ExportCSV(path, res.Customers); err != nil {
			log.Fatalf("export: %v", err)
		}
		slog.Info("exported", "path", path)
	}

	if cfg.Charts.Dir != "" {
		if err := os.MkdirAll(cfg.Charts.Dir, 0o755); err != nil {
			log.Fatalf("charts: %v", err)
		}
		hist := filepath.Join(cfg.Charts.Dir, "rfm_distributions.png")
		if err := chart.Histograms(res.Customers, hist, cfg.Charts.Bins); err != nil {
			log.Fatalf("charts: %v", err)
		}
		tree := filepath.Join(cfg.Charts.Dir, "rfm_segments.png")
		if err := chart.SegmentTreemap(res.Segments, tree, palette.Spectral); err != nil {
			log.Fatalf("charts: %v", err)
		}
		slog.Info("charts written", "histograms", hist, "segments", tree)
	}
}

// loadTable lit la source (CSV ou SQL) et complète les colonnes manquantes si possible.
func loadTable(ctx context.Context, cfg *models.Config) (models.Table, error) {
	if isCSV(cfg.Source) {
		t, err := dataset.LoadCSV(cfg.Source, dataset.Options{})
		if err != nil {
			return models.Table{}, err
		}
		if !cfg.Fields.Complete() {
			detected, err := dataset.DetectFields(t.Columns)
			if err != nil {
				return models.Table{}, fmt.Errorf("detect columns (use --id/--date/--revenue): %w", err)
			}
			cfg.Fields = mergeFields(cfg.Fields, detected)
			slog.Debug("columns detected", "id", cfg.Fields.ID, "date", cfg.Fields.Date, "revenue", cfg.Fields.Revenue)
		}
		return t, nil
	}

	if !cfg.Fields.Complete() {
		return models.Table{}, fmt.Errorf("SQL source needs --id, --date and --revenue")
	}
	db, dsnUsed, err := database.Open(cfg.Source)
	if err != nil {
		return models.Table{}, fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	slog.Debug("connected", "dsn", redact(dsnUsed))

	return database.LoadTransactions(ctx, db, cfg.Table, cfg.Fields)
}

func isCSV(source string) bool {
	if strings.Contains(source, "://") || strings.HasPrefix(source, "file:") {
		return false
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".csv", ".tsv", ".txt":
		return true
	}
	return false
}

// mergeFields garde les colonnes déjà choisies et complète avec la détection.
func mergeFields(set, detected models.Fields) models.Fields {
	if set.ID == "" {
		set.ID = detected.ID
	}
	if set.Date == "" {
		set.Date = detected.Date
	}
	if set.Revenue == "" {
		set.Revenue = detected.Revenue
	}
	return set
}

// redact masque le mot de passe d'un DSN (URL ou natif MySQL user:pass@...).
func redact(dsn string) string {
	if strings.Contains(dsn, "://") {
		if u, err := url.Parse(dsn); err == nil {
			return u.Redacted()
		}
	}
	at := strings.Index(dsn, "@")
	colon := strings.Index(dsn, ":")
	if at < 0 || colon < 0 || colon > at {
		return dsn
	}
	return dsn[:colon+1] + "***" + dsn[at:]
}
