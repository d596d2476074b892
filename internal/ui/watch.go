package ui

import "github.com/hajimehoshi/ebiten/v2"

// WatchScreen is the stack entry for an active playback address. The video
// surface itself is rendered by the embedded player, and playback input is
// handled above the screen stack, so this screen only anchors the route and
// identifies the session it belongs to.
type WatchScreen struct {
	CategorySlug string
	VideoSlug    string
}

func NewWatchScreen(categorySlug, videoSlug string) *WatchScreen {
	return &WatchScreen{CategorySlug: categorySlug, VideoSlug: videoSlug}
}

func (ws *WatchScreen) Name() string { return "Watch" }

func (ws *WatchScreen) OnEnter() {}

func (ws *WatchScreen) OnExit() {}

func (ws *WatchScreen) Update() (*ScreenTransition, error) {
	return nil, nil
}

func (ws *WatchScreen) Draw(dst *ebiten.Image) {
	// The player draws the frame. Keep the backdrop black so nothing bleeds
	// through before the first video frame arrives.
	dst.Fill(ColorBackground)
}
