package images

import (
	"image"
	"image/color"

	"cardviz/internal/cards"

	"github.com/disintegration/imaging"
)

const (
	PlaceholderWidth  = 150
	PlaceholderHeight = 210

	border  = 6
	pipSize = 10
	pipGap  = 4
)

var (
	paper    = color.NRGBA{R: 0xfb, G: 0xfb, B: 0xf5, A: 0xff}
	inkRed   = color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
	inkBlack = color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}
)

// Placeholder draws a plain card face: a border in the card's colour, one
// pip per rank step in the top-left corner (3 has one, 2 has thirteen) and
// a suit-specific centre mark. Jokers get a solid centre panel.
func Placeholder(c cards.Card) image.Image {
	ink := inkBlack
	if c.Red() {
		ink = inkRed
	}
	canvas := imaging.New(PlaceholderWidth, PlaceholderHeight, ink)
	face := imaging.New(PlaceholderWidth-2*border, PlaceholderHeight-2*border, paper)
	canvas = imaging.Paste(canvas, face, image.Pt(border, border))

	if c.IsJoker() {
		panel := imaging.New(PlaceholderWidth/2, PlaceholderHeight/2, ink)
		return imaging.PasteCenter(canvas, panel)
	}

	pip := imaging.New(pipSize, pipSize, ink)
	perRow := (PlaceholderWidth - 2*border - pipGap) / (pipSize + pipGap)
	for i := 0; i <= int(c.Rank); i++ {
		x := border + pipGap + (i%perRow)*(pipSize+pipGap)
		y := border + pipGap + (i/perRow)*(pipSize+pipGap)
		canvas = imaging.Paste(canvas, pip, image.Pt(x, y))
	}

	// Centre mark width grows with the suit so suits of one colour differ.
	mark := imaging.New(20+12*int(c.Suit), 40, ink)
	return imaging.PasteCenter(canvas, mark)
}
