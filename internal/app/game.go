package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"tubecouch/internal/catalog"
	"tubecouch/internal/config"
	"tubecouch/internal/player"
	"tubecouch/internal/session"
	"tubecouch/internal/ui"
)

// Game implements ebiten.Game. It reconciles the session snapshot against
// the embedded player each frame: mounting videos, toggling video output
// across fullscreen/minimized, routing input by mode, and pushing OSD
// overlays.
type Game struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Ctrl    *session.Controller
	Adapter *player.Adapter
	Router  *ui.Router

	Width, Height int

	mountedSlug  string
	videoVisible bool

	osd           player.OSDState
	lastControls  string
	lastCountdown string
	lastUpNext    string

	upNextOpen bool
	upNextSel  int
}

// NewGame wires the adapter events into the controller and returns the game.
func NewGame(cfg *config.Config, cat *catalog.Catalog, ctrl *session.Controller, adapter *player.Adapter, router *ui.Router) *Game {
	g := &Game{
		Config:  cfg,
		Catalog: cat,
		Ctrl:    ctrl,
		Adapter: adapter,
		Router:  router,
		Width:   cfg.UI.Width,
		Height:  cfg.UI.Height,
	}

	adapter.OnReady = func(h *player.Handle) {
		ctrl.OnAdapterReady(h)
	}
	adapter.OnStateChange = func(s player.State) {
		ctrl.OnAdapterStateChange(mapPlaybackState(s))
	}
	return g
}

func mapPlaybackState(s player.State) session.PlaybackState {
	switch s {
	case player.StatePlaying:
		return session.PlaybackPlaying
	case player.StatePaused:
		return session.PlaybackPaused
	case player.StateEnded:
		return session.PlaybackEnded
	default:
		return session.PlaybackUnstarted
	}
}

// ensurePlayer starts the embedded player lazily, on the first mount. The
// window must exist before the native handle can be resolved.
func (g *Game) ensurePlayer() bool {
	if g.Adapter.Availability().Ready() {
		return true
	}
	wid, err := player.GetWindowHandle()
	if err != nil {
		log.Printf("window handle: %v", err)
		return false
	}
	if err := g.Adapter.Start(wid); err != nil {
		log.Printf("player start: %v", err)
		return false
	}
	return true
}

// reconcile mounts or unmounts the player to match the session snapshot.
func (g *Game) reconcile(snap session.Session) {
	if snap.Active() {
		if snap.ActiveVideo.Slug != g.mountedSlug {
			if !g.ensurePlayer() {
				return
			}
			id := catalog.YouTubeID(snap.ActiveVideo)
			if id == "" {
				log.Printf("no video id for %s", snap.ActiveVideo.Slug)
				return
			}
			g.Adapter.Mount(id, g.Config.Playback.Autoplay)
			g.mountedSlug = snap.ActiveVideo.Slug
			g.osd.Hide()
			g.upNextOpen = false
		}
	} else if g.mountedSlug != "" {
		// Close already destroyed the handle; just forget the mount.
		g.mountedSlug = ""
		g.upNextOpen = false
	}

	wantVideo := snap.Mode == session.ModeFullscreen
	if wantVideo != g.videoVisible && g.Adapter.Availability().Ready() {
		g.Adapter.SetVideoVisible(wantVideo)
		g.videoVisible = wantVideo
	}
}

func (g *Game) Update() error {
	// Alt+Enter toggles window fullscreen in all modes
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && ebiten.IsKeyPressed(ebiten.KeyAlt) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	snap := g.Ctrl.Snapshot()
	g.reconcile(snap)

	switch snap.Mode {
	case session.ModeFullscreen:
		g.updatePlay(snap)
	case session.ModeMinimized:
		g.updateMinimized()
		if err := g.Router.Update(); err != nil {
			return err
		}
	default:
		if err := g.Router.Update(); err != nil {
			return err
		}
	}

	ui.UpdateInputState()
	return nil
}

// updatePlay handles input and OSD while the session is fullscreen.
func (g *Game) updatePlay(snap session.Session) {
	kb := &g.Config.Keybinds

	// The up-next list is modal: it captures navigation until dismissed.
	if g.upNextOpen {
		g.updateUpNextList(snap)
		g.syncOverlays(snap)
		return
	}

	// Expire the auto-hide timer; the overlay sync below clears the bar.
	g.osd.Update()

	backPressed := inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyBackspace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButton3)
	enterPressed := inpututil.IsKeyJustPressed(ebiten.KeyEnter) && !ebiten.IsKeyPressed(ebiten.KeyAlt)

	switch {
	case backPressed && snap.Pending != nil:
		g.Ctrl.CancelAdvance()
	case backPressed && g.osd.ShowControls:
		g.osd.Hide()
	case backPressed:
		g.Ctrl.Minimize()
	case enterPressed && snap.Pending != nil:
		g.Ctrl.AdvanceNow()
	case enterPressed:
		g.osd.Poke()
	}

	if keyJustPressed(kb.PlayPause) {
		g.Ctrl.TogglePlayPause()
		g.osd.Poke()
	}
	if keyJustPressed(kb.SkipForward) {
		g.Ctrl.SkipForward()
		g.osd.Poke()
	}
	if keyJustPressed(kb.SkipBackward) {
		g.Ctrl.SkipBackward()
		g.osd.Poke()
	}
	if keyJustPressed(kb.Minimize) {
		g.Ctrl.Minimize()
	}
	if keyJustPressed(kb.Close) {
		g.Ctrl.Close()
	}
	if keyJustPressed(kb.UpNext) {
		g.openUpNextList(snap)
	}
	if keyJustPressed(kb.Fullscreen) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	g.handlePlayMouse(snap)
	g.syncOverlays(snap)
}

// handlePlayMouse maps clicks onto the track when the control bar is shown,
// and toggles pause elsewhere.
func (g *Game) handlePlayMouse(snap session.Session) {
	mx, my, clicked := ui.MouseJustClicked()
	if !clicked {
		return
	}
	if g.osd.ShowControls {
		// Click coordinates arrive in window space; the bar lives in the
		// 1920x1080 ASS play space.
		sx := float64(mx) * 1920 / float64(g.Width)
		sy := float64(my) * 1080 / float64(g.Height)
		if sy > player.ControlsBarY-30 && sy < player.ControlsBarY+30 &&
			sx >= player.ControlsBarX && sx <= player.ControlsBarX+player.ControlsBarW {
			fraction := (sx - player.ControlsBarX) / player.ControlsBarW
			g.Ctrl.ProgressBarClick(fraction)
			g.osd.Poke()
			return
		}
	}
	g.Ctrl.TogglePlayPause()
	g.osd.Poke()
}

func (g *Game) openUpNextList(snap session.Session) {
	if snap.ActiveCategory == nil {
		return
	}
	g.upNextOpen = true
	g.upNextSel = 0
	videos := g.Catalog.VideosIn(snap.ActiveCategory.Slug)
	for i := range videos {
		if snap.ActiveVideo != nil && videos[i].Slug == snap.ActiveVideo.Slug {
			g.upNextSel = i
			break
		}
	}
}

func (g *Game) updateUpNextList(snap session.Session) {
	kb := &g.Config.Keybinds
	if snap.ActiveCategory == nil {
		g.upNextOpen = false
		return
	}
	videos := g.Catalog.VideosIn(snap.ActiveCategory.Slug)
	if len(videos) == 0 {
		g.upNextOpen = false
		return
	}

	dir, enter, back := ui.InputState()
	switch dir {
	case ui.DirUp:
		if g.upNextSel > 0 {
			g.upNextSel--
		}
	case ui.DirDown:
		if g.upNextSel < len(videos)-1 {
			g.upNextSel++
		}
	}
	if back || keyJustPressed(kb.UpNext) {
		g.upNextOpen = false
		return
	}
	if enter {
		g.upNextOpen = false
		g.Ctrl.SelectFromList(&videos[g.upNextSel])
	}
}

// syncOverlays pushes OSD text to the player, re-sending only on change.
func (g *Game) syncOverlays(snap session.Session) {
	if !g.Adapter.Availability().Ready() {
		return
	}

	controls := ""
	if g.osd.ShowControls && snap.ActiveVideo != nil {
		paused := snap.PlaybackState != session.PlaybackPlaying
		controls = player.FormatControls(snap.ActiveVideo.Title, snap.CurrentTime, snap.Duration, paused)
	}
	if controls != g.lastControls {
		g.Adapter.SetOverlay(player.OverlayControls, controls)
		g.lastControls = controls
	}

	countdown := ""
	if snap.Pending != nil {
		countdown = player.FormatCountdown(snap.Pending.Target.Title, snap.Pending.SecondsRemaining)
	}
	if countdown != g.lastCountdown {
		g.Adapter.SetOverlay(player.OverlayCountdown, countdown)
		g.lastCountdown = countdown
	}

	upNext := ""
	if g.upNextOpen && snap.ActiveCategory != nil {
		videos := g.Catalog.VideosIn(snap.ActiveCategory.Slug)
		titles := make([]string, len(videos))
		for i := range videos {
			titles[i] = videos[i].Title
		}
		upNext = player.FormatUpNextList(snap.ActiveCategory.Name, titles, g.upNextSel)
	}
	if upNext != g.lastUpNext {
		g.Adapter.SetOverlay(player.OverlayUpNext, upNext)
		g.lastUpNext = upNext
	}
}

// updateMinimized handles the mini-player strip input while browsing.
func (g *Game) updateMinimized() {
	kb := &g.Config.Keybinds

	if keyJustPressed(kb.Minimize) {
		g.Ctrl.Restore()
		return
	}
	if keyJustPressed(kb.Close) {
		g.Ctrl.Close()
		return
	}
	if keyJustPressed(kb.PlayPause) {
		g.Ctrl.TogglePlayPause()
	}

	// Clicking the strip restores fullscreen
	if mx, my, clicked := ui.MouseJustClicked(); clicked {
		stripY := float64(g.Height - ui.MiniStripHeight)
		if ui.PointInRect(mx, my, 0, stripY, float64(g.Width), ui.MiniStripHeight) {
			g.Ctrl.Restore()
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.Ctrl.Snapshot()

	if snap.Mode == session.ModeFullscreen {
		// The embedded player owns the window surface; draw nothing over it.
		return
	}

	screen.Fill(ui.ColorBackground)
	g.Router.Draw(screen)

	if snap.Mode == session.ModeMinimized {
		g.drawMiniStrip(screen, snap)
	}
}

// drawMiniStrip renders the docked mini-player bar along the bottom edge.
func (g *Game) drawMiniStrip(dst *ebiten.Image, snap session.Session) {
	if snap.ActiveVideo == nil {
		return
	}
	w := float64(g.Width)
	y := float64(g.Height - ui.MiniStripHeight)

	vector.DrawFilledRect(dst, 0, float32(y), float32(w), ui.MiniStripHeight, ui.ColorSurface, false)

	// Thin progress line along the top edge of the strip
	vector.DrawFilledRect(dst, 0, float32(y), float32(w), 3, ui.ColorSurfaceHover, false)
	if snap.Duration > 0 {
		fill := w * snap.ProgressPercent / 100
		vector.DrawFilledRect(dst, 0, float32(y), float32(fill), 3, ui.ColorPrimary, false)
	}

	status := "▶"
	if snap.PlaybackState != session.PlaybackPlaying {
		status = "❚❚"
	}
	ui.DrawText(dst, status, 28, y+28, ui.FontSizeHeading, ui.ColorPrimary)
	ui.DrawText(dst, snap.ActiveVideo.Title, 80, y+18, ui.FontSizeBody, ui.ColorText)

	timeline := ui.FormatDuration(int(snap.CurrentTime))
	if total := ui.FormatDuration(int(snap.Duration)); total != "" {
		if timeline == "" {
			timeline = "0:00"
		}
		timeline += " / " + total
	}
	ui.DrawText(dst, timeline, 80, y+44, ui.FontSizeSmall, ui.ColorTextSecondary)

	hint := g.Config.Keybinds.Minimize + " restore   " +
		g.Config.Keybinds.PlayPause + " pause   " +
		g.Config.Keybinds.Close + " close"
	hw, _ := ui.MeasureText(hint, ui.FontSizeSmall)
	ui.DrawText(dst, hint, w-hw-28, y+32, ui.FontSizeSmall, ui.ColorTextMuted)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Width, g.Height
}
