package upc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Render encodes a single UPC-A code and composites it onto a canvas of
// exactly (widthPx, heightPx) pixels with a white background.
//
// The symbology encoder derives its own output size from module math, so the
// encoded symbol is integer-scaled to params.ModuleWidth and then centered on
// the target canvas with a straight pixel copy. Nothing is ever rescaled to
// fill leftover space; leftover space becomes white margin.
//
// A code that passed Validate can still fail here when its check digit is
// wrong; the error is per-code and the caller is expected to keep going.
func Render(code string, params EncoderParams, widthPx, heightPx int, format Format) (*Artifact, error) {
	symbol, err := encodeSymbol(code)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return renderSVG(code, symbol, params, widthPx, heightPx)
	default:
		return renderPNG(code, symbol, params, widthPx, heightPx)
	}
}

// encodeSymbol runs the external symbology encoder. UPC-A is the EAN-13
// symbology with a leading zero, so the 12-digit code is encoded as a
// 13-digit EAN; the encoder verifies the check digit as a side effect.
func encodeSymbol(code string) (barcode.Barcode, error) {
	symbol, err := ean.Encode("0" + code)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", code, err)
	}
	return symbol, nil
}

func renderPNG(code string, symbol barcode.Barcode, params EncoderParams, widthPx, heightPx int) (*Artifact, error) {
	barsWidth := symbol.Bounds().Dx() * params.ModuleWidth
	scaled, err := barcode.Scale(symbol, barsWidth, params.BarHeight)
	if err != nil {
		return nil, fmt.Errorf("scale %s: %w", code, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Integer offsets, pixel copy: keeps the bars crisp.
	xOff := (widthPx - barsWidth) / 2
	if xOff < 0 {
		xOff = 0
	}
	target := image.Rect(xOff, verticalMargin, xOff+barsWidth, verticalMargin+params.BarHeight)
	draw.Draw(canvas, target, scaled, scaled.Bounds().Min, draw.Src)

	if params.FontSize > 0 {
		drawDigits(canvas, code, widthPx, heightPx)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png for %s: %w", code, err)
	}

	return &Artifact{
		Format:   FormatPNG,
		Data:     buf.Bytes(),
		WidthPx:  widthPx,
		HeightPx: heightPx,
	}, nil
}

// drawDigits renders the human-readable digits centered below the bars.
// The fixed 7x13 face does not scale with EncoderParams.FontSize; the font
// size only reserves vertical space so raster and vector output agree on
// bar height.
func drawDigits(canvas *image.RGBA, code string, widthPx, heightPx int) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, code).Round()
	x := (widthPx - width) / 2
	if x < 0 {
		x = 0
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x, heightPx-verticalMargin),
	}
	d.DrawString(code)
}
