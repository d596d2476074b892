package player

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/gen2brain/go-mpv"

	"tubecouch/internal/config"
)

// Adapter wraps libmpv behind a uniform control surface. mpv plays YouTube
// media through its ytdl integration; native OSC and key bindings are
// disabled because the session controller owns all controls.
//
// At most one live Handle exists at a time: Mount destroys the previous
// mounted instance first, and a superseded handle's calls become no-ops, so
// a stale handle can never steer the new video or deliver duplicate events.
type Adapter struct {
	cfg   *config.Config
	avail *Availability

	mu       sync.Mutex
	m        *mpv.Mpv
	gen      uint64
	cur      *Handle
	position float64
	duration float64
	paused   bool
	ended    bool

	// OnReady fires once per mount, after the file has loaded.
	OnReady func(*Handle)
	// OnStateChange surfaces playing/paused/ended transitions.
	OnStateChange func(State)
}

// NewAdapter creates an adapter. The runtime is not started yet; call Start
// once the window is visible, or WaitUntilAvailable to block until then.
func NewAdapter(cfg *config.Config) *Adapter {
	return &Adapter{cfg: cfg, avail: NewAvailability()}
}

// Availability returns the one-shot readiness latch; callers wait on it to
// learn when the runtime can accept mounts.
func (a *Adapter) Availability() *Availability {
	return a.avail
}

// Start initializes libmpv embedded into the given native window and signals
// availability. Idempotent: subsequent calls are no-ops.
func (a *Adapter) Start(wid int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.m != nil {
		return nil
	}

	m := mpv.New()

	must(m.SetOptionString("wid", fmt.Sprintf("%d", wid)))
	must(m.SetOptionString("vo", "gpu"))
	must(m.SetOptionString("hwdec", a.cfg.Playback.HWAccel))

	// The session controller owns playback controls; strip everything mpv
	// would add on its own.
	must(m.SetOptionString("osc", "no"))
	must(m.SetOptionString("input-default-bindings", "no"))
	must(m.SetOptionString("input-vo-keyboard", "no"))

	// Pause on the last frame instead of unloading, so the ended state can
	// still be seeked out of.
	must(m.SetOptionString("keep-open", "yes"))
	must(m.SetOptionString("idle", "yes"))

	must(m.SetOptionString("ytdl", "yes"))
	must(m.SetOptionString("volume", fmt.Sprintf("%d", a.cfg.Playback.Volume)))

	if err := m.Initialize(); err != nil {
		return fmt.Errorf("mpv init: %w", err)
	}

	m.ObserveProperty(0, "time-pos", mpv.FormatDouble)
	m.ObserveProperty(0, "duration", mpv.FormatDouble)
	m.ObserveProperty(0, "pause", mpv.FormatFlag)
	m.ObserveProperty(0, "eof-reached", mpv.FormatFlag)

	a.m = m
	go a.eventLoop()

	a.avail.Signal()
	return nil
}

func must(err error) {
	if err != nil {
		log.Printf("mpv option warning: %v", err)
	}
}

// Mount starts playback of a video, tearing down any previously mounted
// instance first. Returns nil when the runtime has not started yet.
func (a *Adapter) Mount(videoID string, autoplay bool) *Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.m == nil {
		return nil
	}

	if a.cur != nil {
		a.stopLocked()
	}

	a.gen++
	h := &Handle{a: a, gen: a.gen, videoID: videoID}
	a.cur = h
	a.position = 0
	a.duration = 0
	a.paused = !autoplay
	a.ended = false

	url := "https://www.youtube.com/watch?v=" + videoID
	if err := a.m.Command([]string{"loadfile", url}); err != nil {
		log.Printf("mpv loadfile: %v", err)
	}
	pause := "no"
	if !autoplay {
		pause = "yes"
	}
	if err := a.m.SetPropertyString("pause", pause); err != nil {
		log.Printf("mpv pause: %v", err)
	}
	if err := a.m.SetPropertyString("vid", "auto"); err != nil {
		log.Printf("mpv vid: %v", err)
	}
	return h
}

// stopLocked invalidates the current handle before sending the stop command,
// so the resulting end-file event is not mistaken for a natural end.
func (a *Adapter) stopLocked() {
	a.cur = nil
	a.gen++
	if a.m != nil {
		if err := a.m.Command([]string{"stop"}); err != nil {
			log.Printf("mpv stop: %v", err)
		}
	}
}

// SetVideoVisible toggles video decoding while keeping audio running. Used
// by the mini-player: the browse UI owns the window surface while minimized.
func (a *Adapter) SetVideoVisible(visible bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.m == nil {
		return
	}
	track := "no"
	if visible {
		track = "auto"
	}
	if err := a.m.SetPropertyString("vid", track); err != nil {
		log.Printf("mpv vid: %v", err)
	}
}

// SetOverlay renders ASS text into a persistent OSD slot; empty text clears
// the slot.
func (a *Adapter) SetOverlay(id int, text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.m == nil {
		return
	}
	var err error
	if text == "" {
		err = a.m.Command([]string{"osd-overlay", fmt.Sprintf("%d", id), "none", ""})
	} else {
		err = a.m.Command([]string{"osd-overlay", fmt.Sprintf("%d", id), "ass-events", text})
	}
	if err != nil {
		log.Printf("mpv osd-overlay: %v", err)
	}
}

// Shutdown tears down the mpv instance.
func (a *Adapter) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.m == nil {
		return
	}
	a.cur = nil
	a.gen++
	a.m.TerminateDestroy()
	a.m = nil
}

// guard runs fn against mpv on behalf of a handle. Calls from superseded
// handles, or made before the runtime started, are silently dropped, and a
// failing mpv call is logged and ignored, since mpv may be mid-teardown.
func (a *Adapter) guard(h *Handle, fn func(m *mpv.Mpv) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.m == nil || h == nil || h.gen != a.gen {
		return
	}
	if err := fn(a.m); err != nil {
		log.Printf("mpv: %v", err)
	}
}

func (a *Adapter) eventLoop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	for {
		m := a.m
		if m == nil {
			return
		}
		ev := m.WaitEvent(1.0)
		if ev == nil {
			continue
		}

		switch ev.EventID {
		case mpv.EventPropertyChange:
			if ev.Data == nil {
				continue
			}
			prop := ev.Property()
			a.onProperty(prop.Name, prop.Data)

		case mpv.EventFileLoaded:
			a.mu.Lock()
			h := a.cur
			fire := h != nil && !h.readyFired
			if fire {
				h.readyFired = true
			}
			paused := a.paused
			a.mu.Unlock()
			if fire {
				if cb := a.OnReady; cb != nil {
					cb(h)
				}
				if paused {
					a.notify(StatePaused)
				} else {
					a.notify(StatePlaying)
				}
			}

		case mpv.EventEnd:
			// Only a live handle's end is a natural end; stopLocked clears
			// the handle before issuing stop, so teardown ends are dropped.
			a.mu.Lock()
			live := a.cur != nil && !a.ended
			if live {
				a.ended = true
			}
			a.mu.Unlock()
			if live {
				a.notify(StateEnded)
			}

		case mpv.EventShutdown:
			return
		}
	}
}

func (a *Adapter) onProperty(name string, data interface{}) {
	var fire State
	notify := false

	a.mu.Lock()
	live := a.cur != nil
	switch name {
	case "time-pos":
		if v, ok := data.(float64); ok {
			a.position = v
		}
	case "duration":
		if v, ok := data.(float64); ok {
			a.duration = v
		}
	case "pause":
		if v, ok := data.(int); ok {
			paused := v == 1
			if live && paused != a.paused && !a.ended {
				notify = true
				if paused {
					fire = StatePaused
				} else {
					fire = StatePlaying
				}
			}
			a.paused = paused
		}
	case "eof-reached":
		// keep-open pauses at EOF instead of unloading, so end-of-file
		// arrives as this flag rather than an end event.
		if v, ok := data.(int); ok && v == 1 && live && !a.ended {
			a.ended = true
			notify = true
			fire = StateEnded
		}
	}
	a.mu.Unlock()

	if notify {
		a.notify(fire)
	}
}

func (a *Adapter) notify(s State) {
	if cb := a.OnStateChange; cb != nil {
		cb(s)
	}
}

// Handle is the control surface for one mounted video. All methods are
// guarded pass-throughs: they do nothing after the handle is superseded or
// destroyed, and underlying player errors never escape.
type Handle struct {
	a          *Adapter
	gen        uint64
	videoID    string
	readyFired bool
}

func (h *Handle) VideoID() string { return h.videoID }

func (h *Handle) Play() {
	h.a.guard(h, func(m *mpv.Mpv) error {
		return m.SetPropertyString("pause", "no")
	})
}

func (h *Handle) Pause() {
	h.a.guard(h, func(m *mpv.Mpv) error {
		return m.SetPropertyString("pause", "yes")
	})
}

// SeekTo seeks to an absolute position in seconds.
func (h *Handle) SeekTo(seconds float64) {
	h.a.guard(h, func(m *mpv.Mpv) error {
		if h.a.ended {
			h.a.ended = false
		}
		return m.Command([]string{"seek", fmt.Sprintf("%.1f", seconds), "absolute"})
	})
}

// CurrentTime returns the playback position in seconds, 0 when superseded.
func (h *Handle) CurrentTime() float64 {
	h.a.mu.Lock()
	defer h.a.mu.Unlock()
	if h.gen != h.a.gen {
		return 0
	}
	return h.a.position
}

// Duration returns the media duration in seconds, 0 when unknown.
func (h *Handle) Duration() float64 {
	h.a.mu.Lock()
	defer h.a.mu.Unlock()
	if h.gen != h.a.gen {
		return 0
	}
	return h.a.duration
}

// State reports the playback state as observed by the adapter.
func (h *Handle) State() State {
	h.a.mu.Lock()
	defer h.a.mu.Unlock()
	if h.gen != h.a.gen {
		return StateUnstarted
	}
	switch {
	case h.a.ended:
		return StateEnded
	case h.a.paused:
		return StatePaused
	case h.a.position > 0:
		return StatePlaying
	default:
		return StateUnstarted
	}
}

// Destroy tears down this mounted instance. Idempotent; a superseded handle
// destroys nothing.
func (h *Handle) Destroy() {
	h.a.mu.Lock()
	defer h.a.mu.Unlock()
	if h.gen != h.a.gen {
		return
	}
	h.a.stopLocked()
}
