package calculator

import (
	"errors"
	"fmt"
)

// Erreurs de base, à tester avec errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInsufficientData = errors.New("insufficient data")
	ErrSchemaMismatch   = errors.New("schema mismatch")
)

// Noms d'étapes utilisés dans les messages d'erreur.
const (
	StageDerive    = "derive_metrics"
	StageEncode    = "encode_quartiles"
	StageAggregate = "aggregate_scores"
	StageClassify  = "classify"
	StageSummarize = "summarize"
)

// StageError identifie l'étape et la colonne en échec.
type StageError struct {
	Stage   string
	Column  string
	Message string
	Err     error
}

func (e *StageError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %s (%v)", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s (%v)", e.Stage, e.Column, e.Message, e.Err)
}

// Unwrap retourne l'erreur de base (ErrInvalidInput, ...).
func (e *StageError) Unwrap() error {
	return e.Err
}

func invalidInput(stage, column, format string, args ...any) error {
	return &StageError{Stage: stage, Column: column, Message: fmt.Sprintf(format, args...), Err: ErrInvalidInput}
}

func insufficientData(stage, column, format string, args ...any) error {
	return &StageError{Stage: stage, Column: column, Message: fmt.Sprintf(format, args...), Err: ErrInsufficientData}
}

func schemaMismatch(stage, column, format string, args ...any) error {
	return &StageError{Stage: stage, Column: column, Message: fmt.Sprintf(format, args...), Err: ErrSchemaMismatch}
}
