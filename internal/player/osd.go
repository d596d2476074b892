package player

import (
	"fmt"
	"strings"
	"time"
)

// OSD overlay slot ids (osd-overlay command).
const (
	OverlayControls  = 1
	OverlayCountdown = 2
	OverlayUpNext    = 3
)

// ASS color format: &HAABBGGRR (alpha, blue, green, red).
const (
	assWhite    = "&H00FFFFFF"
	assWhiteDim = "&H60FFFFFF"
	assBlack    = "&H00000000"
	assPrimary  = "&H00289C46" // leaf green #469C28 in BGR
	assShadow   = "&H80000000"
)

// Progress bar geometry in the ASS 1920x1080 play space. Exported so click
// positions can be mapped back to a track fraction.
const (
	ControlsBarX = 200
	ControlsBarW = 1520
	ControlsBarY = 975
)

// OSDState tracks the auto-hide timer for the controls overlay.
type OSDState struct {
	ShowControls  bool
	controlsUntil time.Time
}

// Poke shows the controls and restarts the 3s auto-hide timer.
func (o *OSDState) Poke() {
	o.ShowControls = true
	o.controlsUntil = time.Now().Add(3 * time.Second)
}

// Hide dismisses the controls immediately.
func (o *OSDState) Hide() {
	o.ShowControls = false
}

// Update expires the auto-hide timer. Returns true when visibility changed.
func (o *OSDState) Update() bool {
	if o.ShowControls && time.Now().After(o.controlsUntil) {
		o.ShowControls = false
		return true
	}
	return false
}

// FormatControls renders the control bar: title, progress bar with scrubber,
// current/total time, and a play/pause glyph. Coordinates are in the ASS
// 1920x1080 play space.
func FormatControls(title string, position, duration float64, paused bool) string {
	var b strings.Builder

	// Backdrop panel along the bottom
	b.WriteString(fmt.Sprintf(
		"{\\an5\\pos(960,1010)\\p1\\bord0\\shad0\\1c%s\\1a&H40&}m 0 0 l 1920 0 l 1920 140 l 0 140{\\p0}\n",
		assBlack,
	))

	// Title above the bar
	b.WriteString(fmt.Sprintf(
		"{\\an4\\pos(200,935)\\bord0\\shad1\\3c%s\\fs26\\1c%s\\b1}%s{\\r}\n",
		assShadow, assWhite, assEscape(title),
	))

	const (
		barX = ControlsBarX
		barW = ControlsBarW
		barY = ControlsBarY
		barH = 6
		barR = 3
	)

	// Track
	b.WriteString(fmt.Sprintf(
		"{\\an7\\pos(%d,%d)\\p1\\bord0\\shad0\\1c%s\\1a&H80&}%s{\\p0}\n",
		barX, barY-barH/2, assWhite, assRoundRect(0, 0, barW, barH, barR),
	))

	pct := 0.0
	if duration > 0 {
		pct = position / duration
		if pct < 0 {
			pct = 0
		}
		if pct > 1 {
			pct = 1
		}
	}

	// Fill + scrubber dot
	if fillW := int(float64(barW) * pct); fillW > 0 {
		if fillW < barR*2 {
			fillW = barR * 2
		}
		b.WriteString(fmt.Sprintf(
			"{\\an7\\pos(%d,%d)\\p1\\bord0\\shad0\\1c%s}%s{\\p0}\n",
			barX, barY-barH/2, assPrimary, assRoundRect(0, 0, fillW, barH, barR),
		))
	}
	dotX := barX + int(float64(barW)*pct)
	b.WriteString(fmt.Sprintf(
		"{\\an5\\pos(%d,%d)\\p1\\bord0\\shad2\\3c%s\\1c%s}%s{\\p0}\n",
		dotX, barY, assShadow, assWhite, assCircle(0, 0, 10),
	))

	// Play/pause glyph
	icon := "❚❚"
	if paused {
		icon = "▶"
	}
	b.WriteString(fmt.Sprintf(
		"{\\an4\\pos(60,1000)\\bord0\\shad1\\3c%s\\fs42\\1c%s}%s{\\r}\n",
		assShadow, assWhite, icon,
	))

	// Times
	b.WriteString(fmt.Sprintf(
		"{\\an4\\pos(120,1003)\\bord0\\shad1\\3c%s\\fs28\\1c%s\\b1}%s{\\r}\n",
		assShadow, assWhite, formatClock(position),
	))
	b.WriteString(fmt.Sprintf(
		"{\\an6\\pos(1860,1003)\\bord0\\shad1\\3c%s\\fs28\\1c%s}%s{\\r}\n",
		assShadow, assWhiteDim, formatClock(duration),
	))

	return b.String()
}

// FormatCountdown renders the "Up Next" card shown while a pending advance
// counts down.
func FormatCountdown(nextTitle string, secondsRemaining int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(
		"{\\an7\\pos(60,60)\\p1\\bord0\\shad0\\1c%s\\1a&H30&}%s{\\p0}\n",
		assBlack, assRoundRect(0, 0, 560, 150, 16),
	))
	b.WriteString(fmt.Sprintf(
		"{\\an7\\pos(90,80)\\bord1\\shad0\\fs22\\1c%s}Up Next{\\r}\n",
		assWhiteDim,
	))
	b.WriteString(fmt.Sprintf(
		"{\\an7\\pos(90,112)\\bord1\\shad0\\fs26\\1c%s\\b1}%s starting in %ds...{\\r}\n",
		assWhite, assEscape(nextTitle), secondsRemaining,
	))
	b.WriteString(fmt.Sprintf(
		"{\\an7\\pos(90,154)\\bord1\\shad0\\fs20\\1c%s}[Enter] play now    [Esc] cancel{\\r}\n",
		assPrimary,
	))

	return b.String()
}

// FormatUpNextList renders the modal up-next list with one entry
// highlighted.
func FormatUpNextList(categoryName string, titles []string, selected int) string {
	var b strings.Builder

	h := 110 + 44*len(titles)
	b.WriteString(fmt.Sprintf(
		"{\\an7\\pos(1280,120)\\p1\\bord0\\shad0\\1c%s\\1a&H20&}%s{\\p0}\n",
		assBlack, assRoundRect(0, 0, 580, h, 16),
	))
	b.WriteString(fmt.Sprintf(
		"{\\an7\\pos(1310,150)\\bord1\\shad0\\fs24\\1c%s\\b1}Up Next: %s{\\r}\n",
		assWhite, assEscape(categoryName),
	))

	for i, title := range titles {
		clr := assWhiteDim
		prefix := "  "
		if i == selected {
			clr = assPrimary
			prefix = "▸ "
		}
		b.WriteString(fmt.Sprintf(
			"{\\an7\\pos(1310,%d)\\bord1\\shad0\\fs22\\1c%s}%s%s{\\r}\n",
			196+44*i, clr, prefix, assEscape(title),
		))
	}

	return b.String()
}

// assEscape strips ASS override braces from untrusted text.
func assEscape(s string) string {
	s = strings.ReplaceAll(s, "{", "(")
	return strings.ReplaceAll(s, "}", ")")
}

// assRoundRect generates an ASS vector drawing for a rounded rectangle,
// relative to the \pos anchor.
func assRoundRect(x, y, w, h, r int) string {
	if r > h/2 {
		r = h / 2
	}
	if r > w/2 {
		r = w / 2
	}
	return fmt.Sprintf(
		"m %d %d l %d %d b %d %d %d %d %d %d l %d %d b %d %d %d %d %d %d l %d %d b %d %d %d %d %d %d l %d %d b %d %d %d %d %d %d",
		x+r, y,
		x+w-r, y,
		x+w, y, x+w, y, x+w, y+r,
		x+w, y+h-r,
		x+w, y+h, x+w, y+h, x+w-r, y+h,
		x+r, y+h,
		x, y+h, x, y+h, x, y+h-r,
		x, y+r,
		x, y, x, y, x+r, y,
	)
}

// assCircle approximates a circle with four cubic bezier segments.
func assCircle(cx, cy, r int) string {
	k := r * 55 / 100
	return fmt.Sprintf(
		"m %d %d b %d %d %d %d %d %d b %d %d %d %d %d %d b %d %d %d %d %d %d b %d %d %d %d %d %d",
		cx, cy-r,
		cx+k, cy-r, cx+r, cy-k, cx+r, cy,
		cx+r, cy+k, cx+k, cy+r, cx, cy+r,
		cx-k, cy+r, cx-r, cy+k, cx-r, cy,
		cx-r, cy-k, cx-k, cy-r, cx, cy-r,
	)
}

func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
