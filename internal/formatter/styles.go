package formatter

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	header lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	muted  lipgloss.Style
	border lipgloss.Style
	cell   lipgloss.Style
}

// NewPalette builds a [Palette] from title, success, error, warning and muted colors.
func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:  NewBold(t).MarginBottom(1),
		header: NewBold(t).Padding(0, 1),
		ok:     NewBold(s),
		err:    NewBold(e),
		warn:   NewStyle(w),
		muted:  NewEm(h),
		border: NewStyle(h),
		cell:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// NewStyle returns a style with foreground fg.
func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

// NewBold returns a bold [NewStyle].
func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

// NewEm returns an italic [NewStyle].
func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
