package tui

import (
	"fmt"
	"strings"

	"github.com/dhabedank/genchecklist/internal/core"
)

// Row locates one item of a rendered checklist.
type Row struct {
	GroupKey string
	Item     core.Item
}

// Rows flattens a checklist into cursor order.
func Rows(cl core.Checklist) []Row {
	var rows []Row
	for _, g := range cl.Groups {
		for _, it := range g.Items {
			rows = append(rows, Row{GroupKey: g.Key, Item: it})
		}
	}
	return rows
}

// RenderChecklist draws a checklist grouped by heading. The row at cursor is
// highlighted; pass -1 for no cursor.
func RenderChecklist(cl core.Checklist, cursor int) string {
	spec, _ := cl.Domain.Spec()
	if cl.IsEmpty() {
		return HelpStyle.Render("This checklist is currently empty.")
	}

	var b strings.Builder
	idx := 0
	for _, g := range cl.Groups {
		b.WriteString(GroupStyle.Render(g.Key))
		b.WriteString("\n")
		for _, it := range g.Items {
			b.WriteString(renderItem(spec, it, idx == cursor))
			b.WriteString("\n")
			idx++
		}
	}

	total, done := cl.Counts()
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(fmt.Sprintf("%d of %d done", done, total)))
	return b.String()
}

func renderItem(spec core.DomainSpec, it core.Item, selected bool) string {
	box := "[ ]"
	name := it.Name
	if it.Done {
		box = "[x]"
		name = DoneStyle.Render(name)
	}

	prefix := "  "
	if selected {
		prefix = CursorStyle.Render("> ")
		if !it.Done {
			name = CursorStyle.Render(name)
		}
	}

	line := prefix + box + " " + name
	var details []string
	for _, c := range spec.Columns {
		if v := it.Field(c.Field); v != "" {
			details = append(details, c.Header+": "+v)
		}
	}
	if len(details) > 0 {
		line += "  " + DetailStyle.Render(strings.Join(details, " · "))
	}
	return line
}
