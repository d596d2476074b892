package ui

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"tubecouch/internal/cache"
	"tubecouch/internal/catalog"
	"tubecouch/internal/durations"
)

// HomeScreen displays the catalog: one horizontally scrolling row per
// category, in catalog order.
type HomeScreen struct {
	cat    *catalog.Catalog
	store  *durations.Store
	thumbs *cache.ThumbCache

	rows     []*VideoRow
	rowIndex int
	built    bool

	scrollY       float64
	targetScrollY float64

	// OnVideoSelected fires when a card is chosen with Enter or a click.
	OnVideoSelected func(v *catalog.Video, c *catalog.Category)

	mu sync.Mutex
}

func NewHomeScreen(cat *catalog.Catalog, store *durations.Store, thumbs *cache.ThumbCache) *HomeScreen {
	return &HomeScreen{
		cat:    cat,
		store:  store,
		thumbs: thumbs,
	}
}

func (hs *HomeScreen) Name() string { return "Home" }

func (hs *HomeScreen) OnEnter() {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if !hs.built {
		hs.buildRows()
		hs.built = true
	}
	// Badges refresh on every entry so durations fetched while watching
	// show up without a restart.
	hs.refreshBadges()
}

func (hs *HomeScreen) OnExit() {}

func (hs *HomeScreen) buildRows() {
	for ci := range hs.cat.Categories {
		c := &hs.cat.Categories[ci]
		row := NewVideoRow(c.Name)
		row.Items = make([]CardItem, len(c.Videos))
		for vi := range c.Videos {
			v := &c.Videos[vi]
			row.Items[vi] = CardItem{
				Slug:  v.Slug,
				Title: v.Title,
			}
			hs.loadThumb(row, vi, v)
		}
		hs.rows = append(hs.rows, row)
	}
	if len(hs.rows) > 0 {
		hs.rows[0].Active = true
	}
}

func (hs *HomeScreen) loadThumb(row *VideoRow, idx int, v *catalog.Video) {
	url := v.ThumbnailURL
	if url == "" {
		id := catalog.YouTubeID(v)
		if id == "" {
			return
		}
		url = cache.YouTubeThumbnailURL(id)
	}
	if img := hs.thumbs.Get(url); img != nil {
		row.Items[idx].Image = img
		return
	}
	slug := v.Slug
	hs.thumbs.LoadAsync(url, func(img *ebiten.Image) {
		hs.mu.Lock()
		defer hs.mu.Unlock()
		if idx < len(row.Items) && row.Items[idx].Slug == slug {
			row.Items[idx].Image = img
		}
	})
}

func (hs *HomeScreen) refreshBadges() {
	for ci, row := range hs.rows {
		c := &hs.cat.Categories[ci]
		for vi := range row.Items {
			secs := c.Videos[vi].DurationSeconds
			if cached, ok := hs.store.Get(row.Items[vi].Slug); ok {
				secs = cached
			}
			row.Items[vi].Duration = FormatDuration(secs)
		}
	}
}

func (hs *HomeScreen) Update() (*ScreenTransition, error) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	if len(hs.rows) == 0 {
		return nil, nil
	}

	dir, enter, _ := InputState()
	currentRow := hs.rows[hs.rowIndex]

	switch dir {
	case DirUp:
		if hs.rowIndex > 0 {
			currentRow.Active = false
			hs.rowIndex--
			hs.rows[hs.rowIndex].Active = true
			hs.ensureRowVisible()
		}
	case DirDown:
		if hs.rowIndex < len(hs.rows)-1 {
			currentRow.Active = false
			hs.rowIndex++
			hs.rows[hs.rowIndex].Active = true
			hs.ensureRowVisible()
		}
	case DirLeft, DirRight:
		currentRow.Update(dir)
	}

	if enter {
		hs.selectFocused()
	}

	// Mouse: clicking a card selects it
	if mx, my, clicked := MouseJustClicked(); clicked {
		for ri, row := range hs.rows {
			for i := range row.Items {
				item := &row.Items[i]
				if PointInRect(mx, my, item.X, item.Y, CardWidth, CardHeight) {
					hs.rows[hs.rowIndex].Active = false
					hs.rowIndex = ri
					row.Active = true
					row.Focused = i
					hs.selectFocused()
					return nil, nil
				}
			}
		}
	}

	return nil, nil
}

func (hs *HomeScreen) selectFocused() {
	row := hs.rows[hs.rowIndex]
	item := row.SelectedItem()
	if item == nil || hs.OnVideoSelected == nil {
		return
	}
	c := &hs.cat.Categories[hs.rowIndex]
	v := hs.cat.VideoBySlug(item.Slug, c.Slug)
	if v != nil {
		hs.OnVideoSelected(v, c)
	}
}

func (hs *HomeScreen) ensureRowVisible() {
	targetY := float64(hs.rowIndex) * SectionFullHeight
	maxScroll := targetY - float64(ScreenHeight)/4
	if maxScroll < 0 {
		maxScroll = 0
	}
	hs.targetScrollY = maxScroll
}

func (hs *HomeScreen) Draw(dst *ebiten.Image) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	hs.scrollY = Lerp(hs.scrollY, hs.targetScrollY, ScrollAnimSpeed)

	if len(hs.rows) == 0 {
		DrawTextCentered(dst, "Catalog is empty", float64(ScreenWidth)/2, float64(ScreenHeight)/2,
			FontSizeHeading, ColorTextSecondary)
		return
	}

	// Header
	DrawText(dst, "TubeCouch", SectionPadding, 16, FontSizeTitle, ColorPrimary)

	y := float64(HeaderHeight+10) - hs.scrollY
	for _, row := range hs.rows {
		h := row.Draw(dst, SectionPadding, y)
		y += h + SectionGap
	}
}
