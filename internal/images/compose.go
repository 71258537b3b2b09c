package images

import (
	"image"
	"image/color"

	"cardviz/internal/cards"

	"github.com/disintegration/imaging"
)

const gutter = 4

var background = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

// ComposeBoard renders cs into one image, columns cards per row, each cell
// sized to the largest scaled card.
func (s *Store) ComposeBoard(cs []cards.Card, factor float64, columns int) (image.Image, error) {
	if columns <= 0 {
		columns = 1
	}
	scaled := make([]image.Image, 0, len(cs))
	cellW, cellH := 0, 0
	for _, c := range cs {
		img, err := s.Scaled(c, factor)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		cellW = max(cellW, b.Dx())
		cellH = max(cellH, b.Dy())
		scaled = append(scaled, img)
	}
	if len(scaled) == 0 {
		return imaging.New(2*gutter, 2*gutter, background), nil
	}

	cols := min(columns, len(scaled))
	rows := (len(scaled) + columns - 1) / columns
	w := gutter + cols*(cellW+gutter)
	h := gutter + rows*(cellH+gutter)
	canvas := imaging.New(w, h, background)
	for i, img := range scaled {
		x := gutter + (i%columns)*(cellW+gutter)
		y := gutter + (i/columns)*(cellH+gutter)
		canvas = imaging.Paste(canvas, img, image.Pt(x, y))
	}
	return canvas, nil
}
