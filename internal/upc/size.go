package upc

import "math"

// UPC-A symbol geometry. The symbol itself spans 95 modules; the standard
// requires a quiet zone of at least 9 modules on each side, rounded up to 10
// here so the full label is 115 modules wide.
const (
	DataModules      = 95
	QuietZoneModules = 10
	TotalModules     = DataModules + 2*QuietZoneModules
)

// DefaultDPI is the rendering density used to convert centimeters to pixels.
const DefaultDPI = 300.0

// Vertical layout constants, in pixels.
const (
	verticalMargin = 4  // white space above the bars and below the text
	textPad        = 4  // gap between the bottom of the bars and the digits
	minBarHeight   = 10 // bars never collapse below this
	minFontSize    = 14
)

// EncoderParams is the deterministic mapping of a target pixel canvas to
// symbology-library parameters. It carries no hidden state: the same
// (widthPx, heightPx, showNumbers) triple always yields the same params.
type EncoderParams struct {
	// ModuleWidth is the width of the narrowest bar, in pixels.
	ModuleWidth int
	// BarHeight is the height of the bars, in pixels.
	BarHeight int
	// FontSize is the size of the human-readable digits, 0 when hidden.
	FontSize int
	// QuietZone is the horizontal white margin on each side, in pixels.
	QuietZone int
}

// MapSize converts a physical size in centimeters to pixels at the given
// density: px = round(cm * dpi / 2.54).
func MapSize(widthCm, heightCm, dpi float64) (widthPx, heightPx int) {
	widthPx = int(math.Round(widthCm * dpi / 2.54))
	heightPx = int(math.Round(heightCm * dpi / 2.54))
	return widthPx, heightPx
}

// MapEncoderParams derives encoder parameters for a target pixel canvas.
// The module width is chosen so that the symbol plus both quiet zones fits
// the requested width; whatever width is left over becomes extra centering
// margin at render time (the encoder output is never rescaled to fill it).
func MapEncoderParams(widthPx, heightPx int, showNumbers bool) EncoderParams {
	moduleWidth := widthPx / TotalModules
	if moduleWidth < 1 {
		moduleWidth = 1
	}

	fontSize := 0
	if showNumbers {
		fontSize = heightPx / 10
		if fontSize < minFontSize {
			fontSize = minFontSize
		}
	}

	barHeight := heightPx - fontSize - 2*verticalMargin
	if fontSize > 0 {
		barHeight -= textPad
	}
	if barHeight < minBarHeight {
		barHeight = minBarHeight
	}

	return EncoderParams{
		ModuleWidth: moduleWidth,
		BarHeight:   barHeight,
		FontSize:    fontSize,
		QuietZone:   moduleWidth * QuietZoneModules,
	}
}
