package upc

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/boombuler/barcode"
)

// renderSVG builds a self-contained SVG document at exactly the target pixel
// size: explicit width/height/viewBox, a white background rect, one rect per
// bar run at integer module positions, and the digits as a text element. The
// bar group is wrapped in a translate() so the symbol sits centered on the
// canvas without any scaling of the encoder output.
func renderSVG(code string, symbol barcode.Barcode, params EncoderParams, widthPx, heightPx int) (*Artifact, error) {
	barsWidth := symbol.Bounds().Dx() * params.ModuleWidth
	xOff := (widthPx - barsWidth) / 2
	if xOff < 0 {
		xOff = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		widthPx, heightPx, widthPx, heightPx)
	fmt.Fprintf(&b, `  <rect width="%d" height="%d" fill="#ffffff"/>`+"\n", widthPx, heightPx)
	fmt.Fprintf(&b, `  <g transform="translate(%d,%d)" fill="#000000">`+"\n", xOff, verticalMargin)

	for _, run := range barRuns(symbol) {
		fmt.Fprintf(&b, `    <rect x="%d" y="0" width="%d" height="%d"/>`+"\n",
			run.start*params.ModuleWidth, run.length*params.ModuleWidth, params.BarHeight)
	}

	b.WriteString("  </g>\n")

	if params.FontSize > 0 {
		fmt.Fprintf(&b, `  <text x="%d" y="%d" text-anchor="middle" font-family="monospace" font-size="%d" fill="#000000">%s</text>`+"\n",
			widthPx/2, heightPx-verticalMargin, params.FontSize, code)
	}

	b.WriteString("</svg>\n")

	return &Artifact{
		Format:   FormatSVG,
		Data:     []byte(b.String()),
		WidthPx:  widthPx,
		HeightPx: heightPx,
	}, nil
}

type barRun struct {
	start  int // module index of the first black module
	length int // run length in modules
}

// barRuns scans the encoded symbol at one pixel per module and collapses
// adjacent black modules into runs.
func barRuns(symbol barcode.Barcode) []barRun {
	bounds := symbol.Bounds()
	y := bounds.Min.Y

	var runs []barRun
	current := -1
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		if isBlack(symbol.At(x, y)) {
			if current < 0 {
				current = x - bounds.Min.X
			}
			continue
		}
		if current >= 0 {
			runs = append(runs, barRun{start: current, length: x - bounds.Min.X - current})
			current = -1
		}
	}
	if current >= 0 {
		runs = append(runs, barRun{start: current, length: bounds.Dx() - current})
	}
	return runs
}

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}
