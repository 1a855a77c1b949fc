// Package config charge la configuration d'exécution : défauts, fichier, variables RFM_*.
package config

import (
	"fmt"
	"os"
	"strings"

	"rfm-segments/pkg/calculator"
	"rfm-segments/pkg/logger"
	"rfm-segments/pkg/models"

	"github.com/spf13/viper"
)

// EnvPrefix préfixe les variables d'environnement (RFM_SOURCE, RFM_FIELDS_ID, ...).
const EnvPrefix = "RFM"

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "")
	v.SetDefault("table", "transactions")
	v.SetDefault("fields.id", "")
	v.SetDefault("fields.date", "")
	v.SetDefault("fields.revenue", "")
	v.SetDefault("labeling", "value")
	v.SetDefault("top", 10)
	v.SetDefault("output.dir", "reports/")
	v.SetDefault("output.format", "json")
	v.SetDefault("charts.dir", "")
	v.SetDefault("charts.bins", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("verbose", false)
}

// Load lit la configuration. path peut être vide (défauts + environnement).
func Load(path string) (models.Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return models.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg models.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return models.Config{}, fmt.Errorf("decode config: %w", err)
	}
	// Compatibilité : DSN seul via RFM_DSN.
	if cfg.Source == "" {
		cfg.Source = os.Getenv(EnvPrefix + "_DSN")
	}
	return cfg, nil
}

// Validate vérifie les valeurs énumérées et les bornes.
func Validate(cfg models.Config) error {
	if cfg.Source == "" {
		return fmt.Errorf("source is required (CSV path or DSN)")
	}
	if _, err := calculator.ParseLabelScheme(cfg.Labeling); err != nil {
		return err
	}
	switch cfg.Output.Format {
	case "json", "csv", "none":
	default:
		return fmt.Errorf("unknown output format %q (want json|csv|none)", cfg.Output.Format)
	}
	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text|json)", cfg.Log.Format)
	}
	if cfg.Charts.Bins < 1 {
		return fmt.Errorf("charts.bins must be >= 1, got %d", cfg.Charts.Bins)
	}
	if cfg.Top < 0 {
		return fmt.Errorf("top must be >= 0, got %d", cfg.Top)
	}
	return nil
}
