package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CardItem represents a single video card in a row.
type CardItem struct {
	Slug     string
	Title    string
	Duration string // formatted badge text, empty hides the badge
	Image    *ebiten.Image
	// Set by the row during layout
	X, Y float64
}

// VideoRow is a horizontally scrolling row of video cards.
type VideoRow struct {
	Items         []CardItem
	Focused       int
	Label         string
	OffsetX       float64
	targetOffsetX float64

	Active bool // whether this row currently has focus
}

func NewVideoRow(label string) *VideoRow {
	return &VideoRow{
		Label: label,
	}
}

func (vr *VideoRow) Update(dir Direction) (consumed bool) {
	if len(vr.Items) == 0 {
		return false
	}
	switch dir {
	case DirLeft:
		if vr.Focused > 0 {
			vr.Focused--
			vr.ensureVisible()
			return true
		}
	case DirRight:
		if vr.Focused < len(vr.Items)-1 {
			vr.Focused++
			vr.ensureVisible()
			return true
		}
	}
	return false
}

func (vr *VideoRow) ensureVisible() {
	itemX := float64(vr.Focused) * (CardWidth + CardGap)
	viewWidth := float64(ScreenWidth) - SectionPadding*2

	if itemX+CardWidth-vr.targetOffsetX > viewWidth {
		vr.targetOffsetX = itemX + CardWidth - viewWidth + CardGap
	}
	if itemX-vr.targetOffsetX < 0 {
		vr.targetOffsetX = itemX
	}
}

func (vr *VideoRow) AnimateScroll() {
	vr.OffsetX = Lerp(vr.OffsetX, vr.targetOffsetX, ScrollAnimSpeed)
}

func (vr *VideoRow) Draw(dst *ebiten.Image, baseX, baseY float64) float64 {
	vr.AnimateScroll()

	// Section label
	DrawText(dst, vr.Label, baseX, baseY, FontSizeHeading, ColorText)
	baseY += SectionTitleH

	rowHeight := float64(CardHeight + FontSizeCaption + 16 + CardFocusPad*2)

	for i := range vr.Items {
		item := &vr.Items[i]
		ix := baseX + float64(i)*(CardWidth+CardGap) - vr.OffsetX
		iy := baseY + CardFocusPad

		// Skip offscreen items
		if ix+CardWidth < baseX-CardGap || ix > float64(ScreenWidth) {
			continue
		}

		item.X = ix
		item.Y = iy

		isFocused := vr.Active && i == vr.Focused

		if isFocused {
			vector.DrawFilledRect(dst,
				float32(ix-CardFocusPad), float32(iy-CardFocusPad),
				float32(CardWidth+CardFocusPad*2), float32(CardHeight+CardFocusPad*2),
				ColorFocusBorder, false)
		}

		// Thumbnail or placeholder
		if item.Image != nil {
			op := &ebiten.DrawImageOptions{}
			bounds := item.Image.Bounds()
			scaleX := float64(CardWidth) / float64(bounds.Dx())
			scaleY := float64(CardHeight) / float64(bounds.Dy())
			op.GeoM.Scale(scaleX, scaleY)
			op.GeoM.Translate(ix, iy)
			dst.DrawImage(item.Image, op)
		} else {
			vector.DrawFilledRect(dst, float32(ix), float32(iy),
				float32(CardWidth), float32(CardHeight),
				ColorSurface, false)
			DrawTextCentered(dst, item.Title,
				ix+CardWidth/2, iy+CardHeight/2,
				FontSizeSmall, ColorTextMuted)
		}

		// Duration badge, bottom-right corner of the thumbnail
		if item.Duration != "" {
			bw, bh := MeasureText(item.Duration, FontSizeSmall)
			bx := ix + CardWidth - bw - 14
			by := iy + CardHeight - bh - 10
			vector.DrawFilledRect(dst, float32(bx-5), float32(by-2),
				float32(bw+10), float32(bh+4), ColorBadge, false)
			DrawText(dst, item.Duration, bx, by, FontSizeSmall, ColorText)
		}

		// Title below the thumbnail
		titleColor := ColorTextSecondary
		if isFocused {
			titleColor = ColorText
		}
		title := truncateText(item.Title, CardWidth, FontSizeCaption)
		DrawText(dst, title, ix, iy+CardHeight+4, FontSizeCaption, titleColor)
	}

	return rowHeight + SectionTitleH
}

func (vr *VideoRow) SelectedItem() *CardItem {
	if len(vr.Items) == 0 || vr.Focused >= len(vr.Items) {
		return nil
	}
	return &vr.Items[vr.Focused]
}

func truncateText(s string, maxWidth float64, fontSize float64) string {
	w, _ := MeasureText(s, fontSize)
	if w <= maxWidth {
		return s
	}
	for i := len(s) - 1; i > 0; i-- {
		candidate := s[:i] + "…"
		w, _ = MeasureText(candidate, fontSize)
		if w <= maxWidth {
			return candidate
		}
	}
	return "…"
}

// CreatePlaceholderImage creates a solid color placeholder image.
func CreatePlaceholderImage(w, h int, clr color.Color) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(clr)
	return img
}
