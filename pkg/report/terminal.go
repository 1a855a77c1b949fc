package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"rfm-segments/pkg/models"
	"rfm-segments/pkg/palette"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const barWidth = 30

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

// RenderSummary écrit le tableau des segments suivi d'une barre de part par segment.
// Les libellés viennent des lignes du résumé, jamais d'une liste figée.
func RenderSummary(w io.Writer, segments []models.SegmentSummary, p palette.Palette) error {
	rows := make([][]string, 0, len(segments))
	for _, s := range segments {
		rows = append(rows, []string{
			string(s.Name),
			strconv.FormatFloat(s.RecencyMean, 'f', 1, 64),
			strconv.FormatFloat(s.FrequencyMean, 'f', 1, 64),
			strconv.FormatFloat(s.MonetaryMean, 'f', 1, 64),
			strconv.Itoa(s.Count),
			strconv.FormatFloat(s.Share, 'f', 1, 64) + "%",
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 && row >= 0 && row < len(segments) {
				return cellStyle.Foreground(lipgloss.Color(p.Hex(segments[row].Name)))
			}
			return cellStyle
		}).
		Headers("Segment", "Recency", "Frequency", "Monetary", "Count", "Share").
		Rows(rows...)

	if _, err := fmt.Fprintln(w, titleStyle.Render("RFM Segments")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	for _, s := range segments {
		n := int(s.Share / 100 * barWidth)
		if n == 0 && s.Count > 0 {
			n = 1
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Hex(s.Name))).Render(strings.Repeat("█", n))
		if _, err := fmt.Fprintf(w, "%-20s %s %d\n", s.Name, bar, s.Count); err != nil {
			return err
		}
	}
	return nil
}

// RenderTop écrit les meilleurs clients (ordre RFM_Segment décroissant).
func RenderTop(w io.Writer, customers []models.ClassifiedRecord) error {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.ID,
			strconv.Itoa(c.Recency),
			strconv.Itoa(c.Frequency),
			strconv.FormatFloat(c.Monetary, 'f', 2, 64),
			c.Segment,
			strconv.Itoa(c.Score),
			string(c.SegmentName),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "Recency", "Frequency", "Monetary", "RFM", "Score", "Segment").
		Rows(rows...)

	if _, err := fmt.Fprintln(w, titleStyle.Render("Top customers")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
