package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/postboard/internal/api"
)

var (
	accent = lipgloss.Color("#00FFFF")
	muted  = lipgloss.Color("#888888")
	errCol = lipgloss.Color("#FF3131")

	idStyle = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Width(6)

	ownerStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(16)

	keyStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(14)

	errorStyle = lipgloss.NewStyle().
			Foreground(errCol)
)

func valueOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// renderPostRow is the one-line form used by list.
func renderPostRow(p *api.Post) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		idStyle.Render(fmt.Sprintf("#%d", p.ID)),
		ownerStyle.Render(p.Owner),
		valueOrDash(p.Title),
	)
}

// renderPost is the detailed form used by show.
func renderPost(p *api.Post) string {
	var b strings.Builder
	row := func(k, v string) {
		b.WriteString(keyStyle.Render(k))
		b.WriteString(v)
		b.WriteString("\n")
	}
	row("id", fmt.Sprintf("%d", p.ID))
	row("owner", p.Owner)
	row("title", valueOrDash(p.Title))
	row("description", valueOrDash(p.Description))
	row("photo", valueOrDash(p.Photo))
	return strings.TrimRight(b.String(), "\n")
}

func renderError(err error) string {
	return errorStyle.Render("error: " + err.Error())
}
