package chart

import "math"

// Rect est un rectangle du plan (origine en bas à gauche).
type Rect struct {
	X, Y, W, H float64
}

// Area retourne la surface du rectangle.
func (r Rect) Area() float64 { return r.W * r.H }

// Center retourne le centre du rectangle.
func (r Rect) Center() (float64, float64) { return r.X + r.W/2, r.Y + r.H/2 }

// Squarify découpe le rectangle (x, y, w, h) en rectangles d'aires proportionnelles
// aux valeurs (algorithme « squarified treemap » de Bruls, Huizing et van Wijk).
// Les valeurs doivent être triées par ordre décroissant pour un bon rapport d'aspect.
// Une valeur <= 0 donne un rectangle vide. Le résultat suit l'ordre des valeurs.
func Squarify(values []float64, x, y, w, h float64) []Rect {
	out := make([]Rect, len(values))
	var idx []int
	total := 0.0
	for i, v := range values {
		if v > 0 {
			idx = append(idx, i)
			total += v
		}
	}
	if total == 0 || w <= 0 || h <= 0 {
		return out
	}

	scale := w * h / total
	sizes := make([]float64, len(idx))
	for k, i := range idx {
		sizes[k] = values[i] * scale
	}
	for k, r := range squarify(sizes, x, y, w, h) {
		out[idx[k]] = r
	}
	return out
}

func squarify(sizes []float64, x, y, w, h float64) []Rect {
	if len(sizes) == 0 {
		return nil
	}
	if len(sizes) == 1 {
		return layout(sizes, x, y, w, h)
	}
	i := 1
	for i < len(sizes) && worstRatio(sizes[:i], x, y, w, h) >= worstRatio(sizes[:i+1], x, y, w, h) {
		i++
	}
	current, remaining := sizes[:i], sizes[i:]
	lx, ly, lw, lh := leftover(current, x, y, w, h)
	return append(layout(current, x, y, w, h), squarify(remaining, lx, ly, lw, lh)...)
}

// layout place une rangée le long du côté le plus court.
func layout(sizes []float64, x, y, w, h float64) []Rect {
	covered := sum(sizes)
	rects := make([]Rect, 0, len(sizes))
	if w >= h {
		width := covered / h
		for _, s := range sizes {
			rects = append(rects, Rect{X: x, Y: y, W: width, H: s / width})
			y += s / width
		}
		return rects
	}
	height := covered / w
	for _, s := range sizes {
		rects = append(rects, Rect{X: x, Y: y, W: s / height, H: height})
		x += s / height
	}
	return rects
}

func leftover(sizes []float64, x, y, w, h float64) (float64, float64, float64, float64) {
	covered := sum(sizes)
	if w >= h {
		width := covered / h
		return x + width, y, w - width, h
	}
	height := covered / w
	return x, y + height, w, h - height
}

func worstRatio(sizes []float64, x, y, w, h float64) float64 {
	worst := 0.0
	for _, r := range layout(sizes, x, y, w, h) {
		worst = math.Max(worst, math.Max(r.W/r.H, r.H/r.W))
	}
	return worst
}

func sum(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += x
	}
	return t
}
