// Package session owns the playback session: which video and category are
// active, the playback state reconciled from the external player, the
// minimize/restore/close lifecycle, and the auto-advance countdown. Exactly
// one session exists; only the Controller mutates it.
package session

import "tubecouch/internal/catalog"

// Mode is the player surface mode.
type Mode int

const (
	ModeClosed Mode = iota
	ModeFullscreen
	ModeMinimized
)

func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeFullscreen:
		return "fullscreen"
	case ModeMinimized:
		return "minimized"
	default:
		return "unknown"
	}
}

// PlaybackState mirrors the external player's reported state.
type PlaybackState int

const (
	PlaybackUnstarted PlaybackState = iota
	PlaybackPlaying
	PlaybackPaused
	PlaybackEnded
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackUnstarted:
		return "unstarted"
	case PlaybackPlaying:
		return "playing"
	case PlaybackPaused:
		return "paused"
	case PlaybackEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// PendingAdvance is a cancellable countdown to the next video.
type PendingAdvance struct {
	Target           catalog.Video
	SecondsRemaining int
}

// Session is the transient active-playback state.
//
// Invariant: Mode == ModeClosed exactly when ActiveVideo == nil, and
// ModeMinimized requires an active video.
type Session struct {
	ActiveVideo    *catalog.Video
	ActiveCategory *catalog.Category
	Mode           Mode
	PlaybackState  PlaybackState

	CurrentTime     float64
	Duration        float64
	ProgressPercent float64 // clamped to [0,100], 0 while duration unknown

	Pending *PendingAdvance
}

// Active reports whether a video is active.
func (s *Session) Active() bool {
	return s.ActiveVideo != nil
}

// WatchPath returns the canonical watch address for the active pair, or ""
// when nothing is active.
func (s *Session) WatchPath() string {
	if s.ActiveVideo == nil || s.ActiveCategory == nil {
		return ""
	}
	return "/watch/" + s.ActiveCategory.Slug + "/" + s.ActiveVideo.Slug
}
