package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/delegator/internal/dom"
)

var (
	styleBox    = tcell.StyleDefault
	styleHover  = tcell.StyleDefault.Reverse(true)
	styleActive = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
)

// Render draws every boxed element with its label, outer boxes first.
func (s *Source) Render(screen tcell.Screen) {
	screen.Clear()
	active := s.doc.ActiveElement()
	for _, p := range s.layout.items {
		style := styleBox
		switch p.el {
		case active:
			style = styleActive
		case s.hover:
			style = styleHover
		}
		drawBox(screen, p.box, style)
		drawLabel(screen, p.box, label(p.el), style)
	}
	screen.Show()
}

func label(el *dom.Element) string {
	if text, ok := el.Attr("data-label"); ok {
		return text
	}
	return el.String()
}

func drawBox(screen tcell.Screen, b Box, style tcell.Style) {
	right, bottom := b.X+b.W-1, b.Y+b.H-1
	for x := b.X; x <= right; x++ {
		screen.SetContent(x, b.Y, tcell.RuneHLine, nil, style)
		screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := b.Y; y <= bottom; y++ {
		screen.SetContent(b.X, y, tcell.RuneVLine, nil, style)
		screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(b.X, b.Y, tcell.RuneULCorner, nil, style)
	screen.SetContent(right, b.Y, tcell.RuneURCorner, nil, style)
	screen.SetContent(b.X, bottom, tcell.RuneLLCorner, nil, style)
	screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}

// drawLabel writes text inside the top border, clipped to the box.
func drawLabel(screen tcell.Screen, b Box, text string, style tcell.Style) {
	x := b.X + 1
	limit := b.X + b.W - 1
	for _, r := range text {
		if x >= limit {
			return
		}
		screen.SetContent(x, b.Y, r, nil, style)
		x++
	}
}
