package session

import (
	"errors"
	"sync"
	"time"
)

// Status of a session's generation pass.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
)

// ErrPassRunning is returned when a generation pass is requested while one
// is already in flight for the session.
var ErrPassRunning = errors.New("a generation pass is already running")

// Session is the in-memory state for one browser session: the parsed entry
// list, the current settings and the progress of a running pass. Entries are
// replaced wholesale (copy-on-write) rather than mutated in place, so a
// reader holding a snapshot never observes a torn list.
type Session struct {
	ID string

	mu         sync.RWMutex
	entries    []Entry
	size       SizeSetting
	render     RenderSettings
	progress   Progress
	status     Status
	lastActive time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:         id,
		size:       DefaultSizeSetting(),
		render:     DefaultRenderSettings(),
		status:     StatusIdle,
		lastActive: time.Now(),
	}
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

// SetEntries replaces the entry list, e.g. after a new upload.
func (s *Session) SetEntries(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.touch()
}

// Entries returns a snapshot of the entry list. The returned slice is a
// copy; Entry values share artifact pointers, which are immutable once set.
func (s *Session) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]Entry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

// Size returns the current size setting.
func (s *Session) Size() SizeSetting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// UpdateSize applies fn to the size setting and drops all artifacts, since
// they were rendered for the old dimensions.
func (s *Session) UpdateSize(fn func(*SizeSetting)) SizeSetting {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.size)
	s.clearArtifactsLocked()
	s.touch()
	return s.size
}

// Render returns the current render settings.
func (s *Session) Render() RenderSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.render
}

// UpdateRender applies fn to the render settings and drops all artifacts.
func (s *Session) UpdateRender(fn func(*RenderSettings)) RenderSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.render)
	s.clearArtifactsLocked()
	s.touch()
	return s.render
}

func (s *Session) clearArtifactsLocked() {
	if len(s.entries) == 0 {
		return
	}
	cleared := make([]Entry, len(s.entries))
	copy(cleared, s.entries)
	for i := range cleared {
		cleared[i].Artifact = nil
	}
	s.entries = cleared
}

// Progress returns the progress of the running pass, or zeros at idle.
func (s *Session) Progress() (Progress, Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress, s.status
}

// BeginPass marks the session as running. It fails if a pass is already in
// flight; a session never runs two passes at once.
func (s *Session) BeginPass() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusRunning {
		return ErrPassRunning
	}
	s.status = StatusRunning
	s.progress = Progress{}
	s.touch()
	return nil
}

// PublishPass stores an intermediate snapshot of a running pass: the merged
// entry list after a chunk plus the cumulative progress.
func (s *Session) PublishPass(p Progress, entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = p
	s.entries = entries
	s.touch()
}

// FinishPass installs the final entry list and returns the session to idle.
// Progress resets to zero once the pass completes.
func (s *Session) FinishPass(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entries != nil {
		s.entries = entries
	}
	s.progress = Progress{}
	s.status = StatusIdle
	s.touch()
}

// LastActive reports when the session was last used.
func (s *Session) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}
