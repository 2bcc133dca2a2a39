package session

import "github.com/dkotenko/labelforge/internal/upc"

// Physical size bounds in centimeters, and the default label size. The
// default aspect ratio (width over height) is used to recompute the other
// dimension while the ratio lock is on.
const (
	MinWidthCm  = 1.0
	MaxWidthCm  = 30.0
	MinHeightCm = 0.5
	MaxHeightCm = 30.0

	DefaultWidthCm  = 2.2
	DefaultHeightCm = 0.9557
	DefaultAspect   = DefaultWidthCm / DefaultHeightCm
)

// SizeSetting is the requested physical label size.
type SizeSetting struct {
	WidthCm   float64 `json:"width_cm"`
	HeightCm  float64 `json:"height_cm"`
	LockRatio bool    `json:"lock_ratio"`
}

// DefaultSizeSetting returns the standard UPC-A label size with the ratio
// lock enabled.
func DefaultSizeSetting() SizeSetting {
	return SizeSetting{
		WidthCm:   DefaultWidthCm,
		HeightCm:  DefaultHeightCm,
		LockRatio: true,
	}
}

// SetWidth updates the width, clamping to the allowed range. With the ratio
// lock on, the height follows the default aspect ratio. Values that are not
// finite positive numbers are ignored and the last valid setting stands.
func (s *SizeSetting) SetWidth(cm float64) {
	if !(cm > 0) {
		return
	}
	s.WidthCm = clamp(cm, MinWidthCm, MaxWidthCm)
	if s.LockRatio {
		s.HeightCm = clamp(s.WidthCm/DefaultAspect, MinHeightCm, MaxHeightCm)
	}
}

// SetHeight mirrors SetWidth for the height dimension.
func (s *SizeSetting) SetHeight(cm float64) {
	if !(cm > 0) {
		return
	}
	s.HeightCm = clamp(cm, MinHeightCm, MaxHeightCm)
	if s.LockRatio {
		s.WidthCm = clamp(s.HeightCm*DefaultAspect, MinWidthCm, MaxWidthCm)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RenderSettings applies uniformly to every entry at render time.
type RenderSettings struct {
	ShowNumbers bool       `json:"show_numbers"`
	Format      upc.Format `json:"format"`
}

// DefaultRenderSettings returns PNG output with visible digits.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		ShowNumbers: true,
		Format:      upc.FormatPNG,
	}
}

// Progress reports a generation pass: Current counts processed valid
// entries, Total is fixed when the pass starts. Both are zero at idle.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}
