package upc

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validCode carries a correct UPC-A check digit; badChecksum is well-formed
// but the encoder rejects it.
const (
	validCode   = "012345678905"
	badChecksum = "012345678901"
)

func TestRenderPNG(t *testing.T) {
	widthPx, heightPx := MapSize(2.2, 0.9557, DefaultDPI)
	params := MapEncoderParams(widthPx, heightPx, true)

	t.Run("output matches the requested pixel size exactly", func(t *testing.T) {
		artifact, err := Render(validCode, params, widthPx, heightPx, FormatPNG)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(artifact.Data))
		require.NoError(t, err)
		assert.Equal(t, widthPx, img.Bounds().Dx())
		assert.Equal(t, heightPx, img.Bounds().Dy())
		assert.Equal(t, widthPx, artifact.WidthPx)
		assert.Equal(t, heightPx, artifact.HeightPx)
	})

	t.Run("background is white", func(t *testing.T) {
		artifact, err := Render(validCode, params, widthPx, heightPx, FormatPNG)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(artifact.Data))
		require.NoError(t, err)

		// Corners sit inside the quiet zone and margins.
		for _, pt := range [][2]int{{0, 0}, {widthPx - 1, 0}, {0, heightPx - 1}, {widthPx - 1, heightPx - 1}} {
			r, g, b, _ := img.At(pt[0], pt[1]).RGBA()
			assert.Equal(t, uint32(0xffff), r)
			assert.Equal(t, uint32(0xffff), g)
			assert.Equal(t, uint32(0xffff), b)
		}
	})

	t.Run("contains black bars", func(t *testing.T) {
		artifact, err := Render(validCode, params, widthPx, heightPx, FormatPNG)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(artifact.Data))
		require.NoError(t, err)

		found := false
		y := verticalMargin + params.BarHeight/2
		for x := 0; x < widthPx; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r == 0 {
				found = true
				break
			}
		}
		assert.True(t, found, "expected at least one black pixel in the bar area")
	})

	t.Run("rendering twice yields identical dimensions", func(t *testing.T) {
		first, err := Render(validCode, params, widthPx, heightPx, FormatPNG)
		require.NoError(t, err)
		second, err := Render(validCode, params, widthPx, heightPx, FormatPNG)
		require.NoError(t, err)

		assert.Equal(t, first.WidthPx, second.WidthPx)
		assert.Equal(t, first.HeightPx, second.HeightPx)
		assert.Equal(t, first.Data, second.Data)
	})

	t.Run("rejects a wrong check digit", func(t *testing.T) {
		_, err := Render(badChecksum, params, widthPx, heightPx, FormatPNG)
		assert.Error(t, err)
	})

	t.Run("data URI is a png data URI", func(t *testing.T) {
		artifact, err := Render(validCode, params, widthPx, heightPx, FormatPNG)
		require.NoError(t, err)
		assert.Contains(t, artifact.DataURI(), "data:image/png;base64,")
	})
}

func TestRenderSVG(t *testing.T) {
	widthPx, heightPx := MapSize(5, 3, DefaultDPI)
	params := MapEncoderParams(widthPx, heightPx, true)

	t.Run("declares explicit size and viewBox", func(t *testing.T) {
		artifact, err := Render(validCode, params, widthPx, heightPx, FormatSVG)
		require.NoError(t, err)

		doc := string(artifact.Data)
		assert.Contains(t, doc, `width="591"`)
		assert.Contains(t, doc, `height="354"`)
		assert.Contains(t, doc, `viewBox="0 0 591 354"`)
	})

	t.Run("has a white background rect and a translated bar group", func(t *testing.T) {
		artifact, err := Render(validCode, params, widthPx, heightPx, FormatSVG)
		require.NoError(t, err)

		doc := string(artifact.Data)
		assert.Contains(t, doc, `fill="#ffffff"`)
		assert.Contains(t, doc, `transform="translate(`)
	})

	t.Run("includes digits only when font size is set", func(t *testing.T) {
		withNumbers, err := Render(validCode, params, widthPx, heightPx, FormatSVG)
		require.NoError(t, err)
		assert.Contains(t, string(withNumbers.Data), ">"+validCode+"<")

		plain := MapEncoderParams(widthPx, heightPx, false)
		withoutNumbers, err := Render(validCode, plain, widthPx, heightPx, FormatSVG)
		require.NoError(t, err)
		assert.NotContains(t, string(withoutNumbers.Data), "<text")
	})

	t.Run("rejects a wrong check digit", func(t *testing.T) {
		_, err := Render(badChecksum, params, widthPx, heightPx, FormatSVG)
		assert.Error(t, err)
	})
}

func TestParseFormat(t *testing.T) {
	t.Run("accepts png and svg", func(t *testing.T) {
		f, err := ParseFormat("png")
		assert.NoError(t, err)
		assert.Equal(t, FormatPNG, f)

		f, err = ParseFormat("svg")
		assert.NoError(t, err)
		assert.Equal(t, FormatSVG, f)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		_, err := ParseFormat("jpeg")
		assert.Error(t, err)
	})
}
