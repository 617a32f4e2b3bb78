package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/order"
)

// NewRenderer returns a function that renders Markdown for the terminal with glamour,
// picking a light or dark style from the terminal background.
func NewRenderer(width int) (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	return r.Render, nil
}

// Tier colors, templates to runs.
var tierColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// Headline counts the listing by kind, e.g. "3 entities: 1 process_spec, 2 process_run".
// Kinds are colored by rank under the given profile; termenv.Ascii yields plain text.
func Headline(p termenv.Profile, listing []domain.Entity) string {
	counts := make(map[string]int)
	var kinds []string
	for _, e := range listing {
		if counts[e.Type()] == 0 {
			kinds = append(kinds, e.Type())
		}
		counts[e.Type()]++
	}

	noun := "entities"
	if len(listing) == 1 {
		noun = "entity"
	}
	var sb strings.Builder
	sb.WriteString(p.String(fmt.Sprintf("%d %s", len(listing), noun)).Bold().String())
	for i, kind := range kinds {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString(", ")
		}
		label := p.String(fmt.Sprintf("%d %s", counts[kind], kind))
		if rank, err := order.Rank(kind); err == nil {
			label = label.Foreground(p.Color(tierColors[rank]))
		}
		sb.WriteString(label.String())
	}
	return sb.String()
}
