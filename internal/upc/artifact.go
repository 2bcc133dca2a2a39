package upc

import (
	"encoding/base64"
	"fmt"
)

// Format selects the output encoding of a rendered barcode.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported format %q (must be png or svg)", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Artifact is the rendered output for one code: PNG bytes or an SVG
// document, always sized exactly WidthPx by HeightPx.
type Artifact struct {
	Format   Format
	Data     []byte
	WidthPx  int
	HeightPx int
}

// DataURI returns the artifact as a data URI suitable for an <img> src.
func (a *Artifact) DataURI() string {
	return "data:" + a.Format.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}
