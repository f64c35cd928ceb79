package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/memegacha/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// rarityColors mirrors the web page's chart palette.
var rarityColors = map[models.RarityKind]lipgloss.Color{
	models.RarityCommon:    lipgloss.Color("#A1A1AA"),
	models.RarityUncommon:  lipgloss.Color("#4ADE80"),
	models.RarityRare:      lipgloss.Color("#60A5FA"),
	models.RarityLegendary: lipgloss.Color("#C084FC"),
	models.RarityMythic:    lipgloss.Color("#FBBF24"),
}

// Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	card  lipgloss.Style
	modal lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		card:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(h)).Padding(0, 2),
		modal: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(w)).Padding(1, 4),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// RarityStyle colors a rarity label; unknown rarities use the default foreground.
func RarityStyle(r models.Rarity) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if c, ok := rarityColors[r.Kind()]; ok {
		return style.Foreground(c)
	}
	return style
}
