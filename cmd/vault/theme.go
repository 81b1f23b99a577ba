package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/vault"
)

// theme holds the styles of one color scheme
type theme struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	dim    lipgloss.Style
	hash   lipgloss.Style
	ok     lipgloss.Style
	error  lipgloss.Style
	card   lipgloss.Style
}

type palette struct {
	text, muted, accent, success, failure, border string
}

var palettes = map[string]palette{
	"light": {text: "235", muted: "244", accent: "25", success: "28", failure: "160", border: "250"},
	"dark":  {text: "252", muted: "241", accent: "39", success: "82", failure: "196", border: "238"},
}

// newTheme returns the named theme; an unknown name follows the terminal background
func newTheme(name string) theme {
	p, ok := palettes[name]
	if !ok {
		p = palettes["light"]
		if lipgloss.HasDarkBackground() {
			p = palettes["dark"]
		}
	}

	return theme{
		header: lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Bold(true),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		hash:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.success)),
		error:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.failure)).Bold(true),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
	}
}

func (t theme) field(name, value string) string {
	return fmt.Sprintf("%s %s", t.label.Render(name+":"), t.value.Render(value))
}

// renderView prints the displayed memories, or the loading, error or empty state
func (t theme) renderView(w io.Writer, view vault.View) {
	switch {
	case view.Loading:
		fmt.Fprintln(w, t.dim.Render("Loading memories..."))
	case view.Error != "":
		fmt.Fprintln(w, t.error.Render("Error: "+view.Error))
	case view.Empty:
		fmt.Fprintln(w, t.dim.Render("No memories found."))
	default:
		fmt.Fprintf(w, "\n%s\n\n", t.header.Render(fmt.Sprintf("Memories (%d)", len(view.Memories))))
		for _, memory := range view.Memories {
			fmt.Fprintln(w, t.memoryCard(memory, ""))
		}
	}
}

// renderGallery prints one card per gallery item with its image link
func (t theme) renderGallery(w io.Writer, items []vault.GalleryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, t.dim.Render("No memories found."))
		return
	}

	fmt.Fprintf(w, "\n%s\n\n", t.header.Render(fmt.Sprintf("Gallery (%d)", len(items))))
	for _, item := range items {
		image := t.hash.Render(item.ImageURL)
		if item.Placeholder {
			image = t.dim.Render(item.ImageURL + " (unavailable)")
		}
		fmt.Fprintln(w, t.memoryCard(item.MemorySummary, image))
	}
}

func (t theme) memoryCard(memory domain.MemorySummary, image string) string {
	lines := []string{
		t.header.Render(memory.EventType),
		t.field("Date", memory.FormattedDate()),
		t.field("Token", memory.TokenID),
		t.field("Creator", memory.Creator),
		t.field("CID", memory.IPFSHash),
	}
	if image != "" {
		lines = append(lines, fmt.Sprintf("%s %s", t.label.Render("Image:"), image))
	}
	return t.card.Render(strings.Join(lines, "\n"))
}
