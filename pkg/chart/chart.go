// Package chart produit les graphiques RFM (histogrammes, treemap des segments) en PNG.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sort"

	"rfm-segments/pkg/models"
	"rfm-segments/pkg/palette"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoData est retourné quand il n'y a rien à dessiner.
var ErrNoData = errors.New("chart: no data")

const (
	treemapW = 100.0
	treemapH = 60.0
)

var histColor = color.RGBA{R: 0x32, G: 0x88, B: 0xbd, A: 0xff}

// Histograms dessine les distributions (densité) de Recency, Frequency et Monetary,
// empilées dans une seule image PNG.
func Histograms(customers []models.ClassifiedRecord, path string, bins int) error {
	if len(customers) == 0 {
		return ErrNoData
	}
	if bins < 1 {
		return fmt.Errorf("chart: bins must be >= 1, got %d", bins)
	}

	recency := make(plotter.Values, len(customers))
	frequency := make(plotter.Values, len(customers))
	monetary := make(plotter.Values, len(customers))
	for i, c := range customers {
		recency[i] = float64(c.Recency)
		frequency[i] = float64(c.Frequency)
		monetary[i] = c.Monetary
	}

	series := []struct {
		name   string
		values plotter.Values
	}{
		{"Recency", recency},
		{"Frequency", frequency},
		{"Monetary", monetary},
	}

	plots := make([][]*plot.Plot, len(series))
	for i, s := range series {
		p := plot.New()
		p.Title.Text = s.name
		p.Y.Label.Text = "Density"

		h, err := plotter.NewHist(s.values, bins)
		if err != nil {
			return fmt.Errorf("histogram %s: %w", s.name, err)
		}
		h.Normalize(1)
		h.FillColor = histColor
		p.Add(h)
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(12*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// SegmentTreemap dessine un rectangle par segment, d'aire proportionnelle à son effectif.
// Libellés et couleurs sont pris dans les lignes du résumé.
func SegmentTreemap(segments []models.SegmentSummary, path string, pal palette.Palette) error {
	rows := make([]models.SegmentSummary, 0, len(segments))
	for _, s := range segments {
		if s.Count > 0 {
			rows = append(rows, s)
		}
	}
	if len(rows) == 0 {
		return ErrNoData
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })

	values := make([]float64, len(rows))
	for i, s := range rows {
		values[i] = float64(s.Count)
	}
	rects := Squarify(values, 0, 0, treemapW, treemapH)

	p := plot.New()
	p.Title.Text = "RFM Segments"
	p.HideAxes()

	centers := make(plotter.XYs, len(rows))
	texts := make([]string, len(rows))
	for i, r := range rects {
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: r.X, Y: r.Y},
			{X: r.X + r.W, Y: r.Y},
			{X: r.X + r.W, Y: r.Y + r.H},
			{X: r.X, Y: r.Y + r.H},
		})
		if err != nil {
			return fmt.Errorf("segment %s: %w", rows[i].Name, err)
		}
		poly.Color = pal.Color(rows[i].Name)
		poly.LineStyle.Color = color.White
		poly.LineStyle.Width = vg.Points(2)
		p.Add(poly)

		centers[i].X, centers[i].Y = r.Center()
		texts[i] = fmt.Sprintf("%s\n%d (%.1f%%)", rows[i].Name, rows[i].Count, rows[i].Share)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: centers, Labels: texts})
	if err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(labels)

	p.X.Min, p.X.Max = 0, treemapW
	p.Y.Min, p.Y.Max = 0, treemapH

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
