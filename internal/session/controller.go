package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"tubecouch/internal/catalog"
	"tubecouch/internal/durations"
)

// Navigator is the navigation service the controller drives. The controller
// issues navigations to keep the address consistent with the session but
// does not own routing.
type Navigator interface {
	// Navigate moves to path; replace keeps the history depth constant.
	Navigate(path string, replace bool)
	Path() string
}

// Handle is the adapter control surface the controller needs. Every method
// is a guarded no-op once the underlying instance is gone, so the controller
// never has to treat a stale handle as an error.
type Handle interface {
	Play()
	Pause()
	SeekTo(seconds float64)
	CurrentTime() float64
	Duration() float64
	Destroy()
}

const (
	// CatalogPath is the navigation address of the catalog grid.
	CatalogPath = "/"

	defaultPollInterval = 250 * time.Millisecond
	defaultTickInterval = time.Second
	defaultCountdown    = 2
	defaultSkipSeconds  = 10
)

// Options tune controller timing and policy. Zero values take defaults;
// tests shrink the intervals.
type Options struct {
	PollInterval     time.Duration
	TickInterval     time.Duration
	CountdownSeconds int
	SkipSeconds      float64
	// NoWrap disables the end-of-category wrap-around: the last video of a
	// category then ends without a pending advance.
	NoWrap bool
}

// Controller is the player session state machine. It is the single writer
// of the Session; the UI and adapter only read snapshots or call back in.
// Safe for concurrent use; adapter events and timers arrive on their own
// goroutines.
type Controller struct {
	cat   *catalog.Catalog
	store *durations.Store
	nav   Navigator
	opts  Options

	mu     sync.Mutex
	sess   Session
	handle Handle

	// gen identifies one activation. Poll and countdown callbacks carry the
	// gen they were started under and mutate nothing once it moves on.
	gen           string
	pollCancel    chan struct{}
	advanceCancel chan struct{}
}

// New creates a controller over the given collaborators.
func New(cat *catalog.Catalog, store *durations.Store, nav Navigator, opts Options) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.CountdownSeconds <= 0 {
		opts.CountdownSeconds = defaultCountdown
	}
	if opts.SkipSeconds <= 0 {
		opts.SkipSeconds = defaultSkipSeconds
	}
	return &Controller{cat: cat, store: store, nav: nav, opts: opts}
}

// Snapshot returns a copy of the current session. The Pending pointer is
// copied too, so callers can inspect it without racing the countdown.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.sess
	if c.sess.Pending != nil {
		p := *c.sess.Pending
		s.Pending = &p
	}
	return s
}

// Activate makes (video, category) the active pair in fullscreen mode and
// navigates to its canonical watch address, growing history. An unresolvable
// pair falls back to the catalog's first entry instead of failing.
func (c *Controller) Activate(v *catalog.Video, cat *catalog.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v == nil || cat == nil {
		v, cat = c.cat.First()
	}
	c.activateLocked(v, cat, false)
}

// SelectFromList activates a video from the up-next list of the current
// category, replacing in place so browsing the list does not grow history.
// Any in-flight countdown is cleared first.
func (c *Controller) SelectFromList(v *catalog.Video) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess.ActiveCategory == nil {
		return
	}
	c.activateLocked(v, c.sess.ActiveCategory, true)
}

func (c *Controller) activateLocked(v *catalog.Video, cat *catalog.Category, replace bool) {
	if v == nil || cat == nil {
		return
	}
	c.stopAdvanceLocked()
	c.stopPollLocked()

	c.gen = uuid.NewString()
	c.handle = nil
	c.sess = Session{
		ActiveVideo:    v,
		ActiveCategory: cat,
		Mode:           ModeFullscreen,
		PlaybackState:  PlaybackUnstarted,
	}
	if known, ok := c.store.Get(v.Slug); ok {
		c.sess.Duration = float64(known)
	} else if v.DurationSeconds > 0 {
		c.sess.Duration = float64(v.DurationSeconds)
	}

	c.nav.Navigate(c.sess.WatchPath(), replace)
}

// Minimize drops from fullscreen to the mini-player and navigates back to
// the catalog without destroying session state. Playback continues, except
// that a not-playing player is told to pause so it cannot sit half-started
// behind the catalog. Flagged as policy, not an invariant.
func (c *Controller) Minimize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess.Mode != ModeFullscreen || !c.sess.Active() {
		return
	}
	if c.sess.PlaybackState != PlaybackPlaying && c.handle != nil {
		c.handle.Pause()
	}
	c.sess.Mode = ModeMinimized
	c.nav.Navigate(CatalogPath, true)
}

// Restore brings a minimized session back to fullscreen, navigating to the
// watch address in place.
func (c *Controller) Restore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess.Mode != ModeMinimized || !c.sess.Active() {
		return
	}
	c.sess.Mode = ModeFullscreen
	c.nav.Navigate(c.sess.WatchPath(), true)
}

// Close ends the session from any mode: clears the active pair, destroys
// the player handle, cancels timers, and navigates to the catalog in place.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sess.Active() && c.sess.Mode == ModeClosed {
		return
	}
	c.stopAdvanceLocked()
	c.stopPollLocked()
	if c.handle != nil {
		c.handle.Destroy()
		c.handle = nil
	}
	c.gen = uuid.NewString()
	c.sess = Session{Mode: ModeClosed}
	c.nav.Navigate(CatalogPath, true)
}

// CancelAdvance clears a pending advance without touching playback state.
func (c *Controller) CancelAdvance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAdvanceLocked()
}

// AdvanceNow skips the countdown and activates the pending target
// immediately, replace-in-place.
func (c *Controller) AdvanceNow() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess.Pending == nil {
		return
	}
	target := c.sess.Pending.Target
	c.activateLocked(&target, c.sess.ActiveCategory, true)
}

// OnAdapterReady stores the handle for the mounted video and records the
// initial duration. A live player measurement is the most authoritative
// duration source, so a positive reading goes straight into the cache.
func (c *Controller) OnAdapterReady(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handle = h
	d := h.Duration()
	if d > 0 {
		c.sess.Duration = d
		if c.sess.ActiveVideo != nil {
			c.store.SetOne(c.sess.ActiveVideo.Slug, int(d+0.5))
		}
	}
}

// OnAdapterStateChange reconciles the session with a player state event.
func (c *Controller) OnAdapterStateChange(s PlaybackState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sess.Active() {
		return
	}
	switch s {
	case PlaybackPlaying:
		c.sess.PlaybackState = PlaybackPlaying
		c.startPollLocked()
	case PlaybackPaused:
		c.sess.PlaybackState = PlaybackPaused
		c.stopPollLocked()
	case PlaybackEnded:
		c.sess.PlaybackState = PlaybackEnded
		c.stopPollLocked()
		c.queueAdvanceLocked()
	default:
		// Unstarted and anything else the adapter might surface.
	}
}

func (c *Controller) queueAdvanceLocked() {
	v, cat := c.sess.ActiveVideo, c.sess.ActiveCategory
	if v == nil || cat == nil {
		return
	}
	var next *catalog.Video
	if c.opts.NoWrap {
		next = c.cat.NextAfterNoWrap(v, cat.Slug)
	} else {
		next = c.cat.NextAfter(v, cat.Slug)
	}
	if next == nil {
		return
	}
	c.startAdvanceLocked(*next)
}

// --- progress polling ---

// startPollLocked starts the fixed-interval progress poll, stopping any
// previous poller first so at most one is ever live.
func (c *Controller) startPollLocked() {
	c.stopPollLocked()
	cancel := make(chan struct{})
	c.pollCancel = cancel
	go c.pollLoop(c.gen, cancel)
}

func (c *Controller) stopPollLocked() {
	if c.pollCancel != nil {
		close(c.pollCancel)
		c.pollCancel = nil
	}
}

func (c *Controller) pollLoop(gen string, cancel <-chan struct{}) {
	t := time.NewTicker(c.opts.PollInterval)
	defer t.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-t.C:
			if !c.pollTick(gen) {
				return
			}
		}
	}
}

// pollTick reads time and duration from the adapter and refreshes the
// session and the duration cache. The active video is resolved at fire
// time, not captured at start, since it can change mid-flight.
func (c *Controller) pollTick(gen string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	h := c.handle
	if h == nil {
		return true
	}

	t := h.CurrentTime()
	d := h.Duration()
	c.sess.CurrentTime = t
	if d > 0 {
		c.sess.Duration = d
		pct := t / d * 100
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		c.sess.ProgressPercent = pct
		if c.sess.ActiveVideo != nil {
			c.store.SetOne(c.sess.ActiveVideo.Slug, int(d+0.5))
		}
	}
	return true
}

// --- auto-advance countdown ---

// startAdvanceLocked arms the countdown toward next, cancelling any
// previous countdown so at most one is ever live.
func (c *Controller) startAdvanceLocked(next catalog.Video) {
	c.stopAdvanceLocked()
	c.sess.Pending = &PendingAdvance{
		Target:           next,
		SecondsRemaining: c.opts.CountdownSeconds,
	}
	cancel := make(chan struct{})
	c.advanceCancel = cancel
	go c.advanceLoop(c.gen, cancel)
}

func (c *Controller) stopAdvanceLocked() {
	if c.advanceCancel != nil {
		close(c.advanceCancel)
		c.advanceCancel = nil
	}
	c.sess.Pending = nil
}

func (c *Controller) advanceLoop(gen string, cancel <-chan struct{}) {
	t := time.NewTicker(c.opts.TickInterval)
	defer t.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-t.C:
			if !c.advanceTick(gen) {
				return
			}
		}
	}
}

func (c *Controller) advanceTick(gen string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.sess.Pending == nil {
		return false
	}
	c.sess.Pending.SecondsRemaining--
	if c.sess.Pending.SecondsRemaining > 0 {
		return true
	}
	target := c.sess.Pending.Target
	log.Printf("session: advancing to %s", target.Slug)
	c.activateLocked(&target, c.sess.ActiveCategory, true)
	return false
}

// --- playback control delegations ---

// TogglePlayPause flips play/pause on the adapter. No-op without a handle.
func (c *Controller) TogglePlayPause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return
	}
	if c.sess.PlaybackState == PlaybackPlaying {
		c.handle.Pause()
	} else {
		c.handle.Play()
	}
}

// SkipForward seeks ahead by the configured step, clamped to the duration
// when known.
func (c *Controller) SkipForward() {
	c.skip(c.opts.SkipSeconds)
}

// SkipBackward seeks back by the configured step, clamped to zero.
func (c *Controller) SkipBackward() {
	c.skip(-c.opts.SkipSeconds)
}

func (c *Controller) skip(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return
	}
	target := c.handle.CurrentTime() + delta
	if target < 0 {
		target = 0
	}
	if d := c.sess.Duration; d > 0 && target > d {
		target = d
	}
	c.handle.SeekTo(target)
}

// Seek jumps to an absolute position, clamped into [0, duration].
func (c *Controller) Seek(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	if d := c.sess.Duration; d > 0 && seconds > d {
		seconds = d
	}
	c.handle.SeekTo(seconds)
}

// ProgressBarClick seeks to a fraction of the duration. No-op without a
// handle or a known duration.
func (c *Controller) ProgressBarClick(fraction float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil || c.sess.Duration <= 0 {
		return
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	c.handle.SeekTo(fraction * c.sess.Duration)
}

// Teardown cancels timers and destroys the handle. No timer callback fires
// after Teardown returns an observably stale generation.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAdvanceLocked()
	c.stopPollLocked()
	c.gen = uuid.NewString()
	if c.handle != nil {
		c.handle.Destroy()
		c.handle = nil
	}
}
