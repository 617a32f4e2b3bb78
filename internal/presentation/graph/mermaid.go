// Package graph renders flattened listings as Mermaid flowcharts.
package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart from a listing. Nodes appear in
// listing order, so templates come before specs and specs before runs.
// Shapes follow the tier of the kind:
// - Template: {{Hexagon}}
// - Spec: [Rectangle]
// - Run: (Rounded)
// Every Link found in an entity's fields becomes an edge labelled with the field
// name. Back-reference fields are drawn dotted. Links to entities outside the
// listing point at an "external" node.
func GenerateMermaid(listing []domain.Entity) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[domain.Link]string)
	for i, e := range listing {
		for _, k := range e.UIDs().Keys() {
			if _, dup := ids[k]; !dup {
				ids[k] = fmt.Sprintf("n%d", i)
			}
		}
	}

	for i, e := range listing {
		opener, closer := shape(e.Type())
		sb.WriteString(fmt.Sprintf("    n%d%s\"%s\"%s\n", i, opener, label(e), closer))
	}

	external := make(map[domain.Link]string)
	var externals []domain.Link
	for i, e := range listing {
		skip := e.Skip()
		for pair := e.Attributes().Oldest(); pair != nil; pair = pair.Next() {
			if pair.Key == "uids" {
				continue
			}
			arrow := fmt.Sprintf("-- %s -->", pair.Key)
			if slices.Contains(skip, pair.Key) {
				arrow = fmt.Sprintf("-. %s .->", pair.Key)
			}
			for _, l := range links(pair.Value) {
				to, ok := ids[l.Key()]
				if !ok {
					if to, ok = external[l.Key()]; !ok {
						to = fmt.Sprintf("x%d", len(externals))
						external[l.Key()] = to
						externals = append(externals, l)
					}
				}
				sb.WriteString(fmt.Sprintf("    n%d %s %s\n", i, arrow, to))
			}
		}
	}

	if len(externals) > 0 {
		sb.WriteString("\n    %% Links outside the listing\n")
		sb.WriteString("    classDef external fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4 2,color:#000;\n")
		for i, l := range externals {
			sb.WriteString(fmt.Sprintf("    x%d[\"%s\"]\n", i, escape(l.String())))
			sb.WriteString(fmt.Sprintf("    class x%d external;\n", i))
		}
	}

	return sb.String()
}

func shape(typ string) (string, string) {
	switch {
	case strings.HasSuffix(typ, "_template"):
		return "{{", "}}"
	case strings.HasSuffix(typ, "_run"):
		return "(", ")"
	}
	return "[", "]"
}

func label(e domain.Entity) string {
	text := e.Type()
	if items := e.UIDs().Items(); len(items) > 0 {
		text += " <br/> " + items[0].String()
	}
	if name, ok := e.Attributes().Get("name"); ok {
		if s, ok := name.(string); ok && s != "" {
			text = s + " <br/> " + text
		}
	}
	return escape(text)
}

// links collects the Links held by v, looking into containers and plain records
// but not into other entities.
func links(v any) []domain.Link {
	if identity.IsNil(v) {
		return nil
	}
	switch t := v.(type) {
	case domain.Link:
		return []domain.Link{t}
	case []any:
		var out []domain.Link
		for _, x := range t {
			out = append(out, links(x)...)
		}
		return out
	case domain.Tuple:
		return links([]any(t))
	case *domain.Mapping:
		var out []domain.Link
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, links(pair.Key)...)
			out = append(out, links(pair.Value)...)
		}
		return out
	case domain.Entity:
		return nil
	case domain.Record:
		var out []domain.Link
		for pair := t.Attributes().Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, links(pair.Value)...)
		}
		return out
	}
	return nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
