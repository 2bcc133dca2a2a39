// Package entities defines the persisted database models.
package entities

import "time"

// GenerationJob is the run log for one completed generation pass. Session
// entries themselves are never persisted; this trail exists so the settings
// surface can show what was generated and when.
type GenerationJob struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SessionID string    `gorm:"index" json:"session_id"`
	Format    string    `json:"format"`
	WidthPx   int       `json:"width_px"`
	HeightPx  int       `json:"height_px"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Duration  int64     `json:"duration_ms"` // milliseconds
	CreatedAt time.Time `json:"created_at"`
}
