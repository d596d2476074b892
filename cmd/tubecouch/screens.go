package main

import (
	"tubecouch/internal/cache"
	"tubecouch/internal/catalog"
	"tubecouch/internal/durations"
	"tubecouch/internal/session"
	"tubecouch/internal/ui"
)

// screenFactory captures the shared dependencies for creating and wiring screens.
type screenFactory struct {
	cat    *catalog.Catalog
	store  *durations.Store
	thumbs *cache.ThumbCache
	ctrl   *session.Controller
}

func (sf *screenFactory) newHome() ui.Screen {
	home := ui.NewHomeScreen(sf.cat, sf.store, sf.thumbs)
	home.OnVideoSelected = func(v *catalog.Video, c *catalog.Category) {
		sf.ctrl.Activate(v, c)
	}
	return home
}

func (sf *screenFactory) newWatch(categorySlug, videoSlug string) ui.Screen {
	return ui.NewWatchScreen(categorySlug, videoSlug)
}
