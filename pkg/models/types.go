package models

import (
	"io"
	"time"
)

/*
LOAD → table brute telle que lue depuis un CSV ou une base SQL.
*/

// Table est un jeu de données tabulaire en mémoire : noms de colonnes + lignes.
// Les cellules sont des chaînes (CSV) ou des valeurs driver (time.Time, int64, float64, nil).
type Table struct {
	Columns []string
	Rows    [][]any
}

// Index retourne la position d'une colonne, ou -1 si elle est absente.
func (t Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Fields désigne les colonnes identifiant, date et revenu choisies par l'appelant.
type Fields struct {
	ID      string `mapstructure:"id"`
	Date    string `mapstructure:"date"`
	Revenue string `mapstructure:"revenue"`
}

// Complete indique si les trois colonnes sont renseignées.
func (f Fields) Complete() bool {
	return f.ID != "" && f.Date != "" && f.Revenue != ""
}

// Transaction est une ligne d'achat typée.
type Transaction struct {
	CustomerID string
	Date       time.Time
	Revenue    float64
}

/*
COMPUTE → enregistrements produits par chaque étape du pipeline RFM
*/

// CustomerMetrics contient Recency / Frequency / Monetary pour un client.
type CustomerMetrics struct {
	ID        string  `json:"id"`
	Recency   int     `json:"Recency"`   // jours depuis le dernier achat, relatif à la date max globale
	Frequency int     `json:"Frequency"` // nombre de transactions
	Monetary  float64 `json:"Monetary"`  // somme des revenus (peut être négative)
}

// Quartile est une classe ordinale 1..4. La valeur zéro signifie « non encodé ».
type Quartile uint8

// Valid indique si la classe est dans 1..4.
func (q Quartile) Valid() bool { return q >= 1 && q <= 4 }

func (q Quartile) String() string {
	if !q.Valid() {
		return ""
	}
	return string(rune('0' + q))
}

// EncodedRecord ajoute les classes R, F, M aux métriques.
type EncodedRecord struct {
	CustomerMetrics
	R Quartile `json:"R"`
	F Quartile `json:"F"`
	M Quartile `json:"M"`
}

// ScoredRecord ajoute le score composite et le code de segment.
type ScoredRecord struct {
	EncodedRecord
	Score   int    `json:"RFM_Score"`   // R+F+M, dans [3,12]
	Segment string `json:"RFM_Segment"` // concaténation "RFM", sert uniquement au tri
}

// SegmentName est le libellé lisible d'une cohorte.
type SegmentName string

const (
	CantLoseThem      SegmentName = "Can't Loose Them"
	Champions         SegmentName = "Champions"
	Loyal             SegmentName = "Loyal/Commited"
	Potential         SegmentName = "Potential"
	Promising         SegmentName = "Promising"
	RequiresAttention SegmentName = "Requires Attention"
	DemandsActivation SegmentName = "Demands Activation"
)

// SegmentNames liste les 7 segments, du meilleur au moins bon.
var SegmentNames = []SegmentName{
	CantLoseThem,
	Champions,
	Loyal,
	Potential,
	Promising,
	RequiresAttention,
	DemandsActivation,
}

// Rank retourne la position du segment dans SegmentNames, ou -1.
func (s SegmentName) Rank() int {
	for i, n := range SegmentNames {
		if n == s {
			return i
		}
	}
	return -1
}

// ClassifiedRecord est la ligne finale du pipeline.
type ClassifiedRecord struct {
	ScoredRecord
	SegmentName SegmentName `json:"Segment_Name"`
}

// SegmentSummary agrège les métriques d'un segment.
type SegmentSummary struct {
	Name          SegmentName `json:"Segment_Name"`
	RecencyMean   float64     `json:"Recency_Mean"`
	FrequencyMean float64     `json:"Frequency_Mean"`
	MonetaryMean  float64     `json:"Monetary_Mean"`
	Count         int         `json:"Count"`
	Share         float64     `json:"Share"` // % des clients, 1 décimale
}

// Result est la sortie complète d'une exécution.
type Result struct {
	Customers []ClassifiedRecord `json:"customers"`
	Segments  []SegmentSummary   `json:"segments"`
}

/*
CONFIG → paramètres globaux
*/

// Config contient les paramètres d'une exécution (fichier, env, flags).
type Config struct {
	Source   string       `mapstructure:"source"` // chemin CSV ou DSN SQL
	Table    string       `mapstructure:"table"`  // table SQL des transactions
	Fields   Fields       `mapstructure:"fields"`
	Labeling string       `mapstructure:"labeling"` // "value" | "legacy"
	Top      int          `mapstructure:"top"`
	Output   OutputConfig `mapstructure:"output"`
	Charts   ChartsConfig `mapstructure:"charts"`
	Log      LogConfig    `mapstructure:"log"`
	Verbose  bool         `mapstructure:"verbose"` // barre de progression

	// Progress reçoit la barre de progression ; nil = silencieux.
	Progress io.Writer `mapstructure:"-"`
}

// OutputConfig décrit l'export des résultats.
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"` // "json" | "csv" | "none"
}

// ChartsConfig décrit le rendu des graphiques.
type ChartsConfig struct {
	Dir  string `mapstructure:"dir"` // vide = pas de graphiques
	Bins int    `mapstructure:"bins"`
}

// LogConfig décrit la journalisation.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" | "json"
}
