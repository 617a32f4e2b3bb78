// Package tui renders listings for people reading them in a terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/order"
)

// Describe returns a Markdown summary of a listing: one table row per entity, in
// listing order, with its rank, kind, first identifier and name.
func Describe(listing []domain.Entity) (string, error) {
	var sb strings.Builder
	sb.WriteString("# Listing\n\n")
	if len(listing) == 0 {
		sb.WriteString("_No entities._\n")
		return sb.String(), nil
	}

	sb.WriteString("| # | Rank | Type | UID | Name |\n")
	sb.WriteString("|---|------|------|-----|------|\n")
	for i, e := range listing {
		rank, err := order.Rank(e)
		if err != nil {
			return "", err
		}
		uid := ""
		if items := e.UIDs().Items(); len(items) > 0 {
			uid = "`" + items[0].String() + "`"
		}
		name := ""
		if v, ok := e.Attributes().Get("name"); ok {
			name, _ = v.(string)
		}
		fmt.Fprintf(&sb, "| %d | %d | %s | %s | %s |\n", i+1, rank, e.Type(), uid, cell(name))
	}
	return sb.String(), nil
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
