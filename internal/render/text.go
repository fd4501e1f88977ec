// Package render turns a report into a human-readable text view for
// terminals. The JSON rendering in internal/report stays the canonical
// output; this is a presentation layer only.
package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mcncl/jsonlens/internal/config"
	"github.com/mcncl/jsonlens/internal/models"
)

// ColorEnabled resolves a color mode against the destination: "always" and
// "never" are taken as-is, "auto" enables color only when writing to a
// terminal.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type palette struct {
	heading func(a ...interface{}) string
	key     func(a ...interface{}) string
	kind    func(a ...interface{}) string
	errText func(a ...interface{}) string
}

func plain(a ...interface{}) string { return fmt.Sprint(a...) }

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{heading: plain, key: plain, kind: plain, errText: plain}
	}
	return palette{
		heading: color.New(color.Bold).SprintFunc(),
		key:     color.New(color.FgYellow).SprintFunc(),
		kind:    color.New(color.FgCyan).SprintFunc(),
		errText: color.New(color.FgRed).SprintFunc(),
	}
}

// Text renders reports as indented, optionally colored text.
type Text struct {
	pal palette
}

// NewText returns a text renderer; color is applied only when enabled.
func NewText(colorEnabled bool) *Text {
	if colorEnabled {
		// The color package disables itself off-terminal; the caller has
		// already made that decision.
		color.NoColor = false
	}
	return &Text{pal: newPalette(colorEnabled)}
}

// Render produces the text view of rep.
func (t *Text) Render(rep *models.Report) []byte {
	var buf bytes.Buffer

	if rep.Filepath != "" {
		fmt.Fprintf(&buf, "%s %s", t.pal.heading("File:"), rep.Filepath)
		if rep.FileSizeBytes != nil {
			fmt.Fprintf(&buf, " (%d bytes)", *rep.FileSizeBytes)
		}
		buf.WriteByte('\n')
	}

	if rep.AnalysisError != "" {
		fmt.Fprintf(&buf, "%s %s\n", t.pal.heading("Error:"), t.pal.errText(rep.AnalysisError))
		return bytes.TrimRight(buf.Bytes(), "\n")
	}

	fmt.Fprintf(&buf, "%s %s\n", t.pal.heading("Root type:"), t.pal.kind(string(rep.RootType)))
	if rep.MaxDepth != nil {
		fmt.Fprintf(&buf, "%s %d\n", t.pal.heading("Max depth:"), *rep.MaxDepth)
	}

	if rep.Statistics != nil {
		s := rep.Statistics
		fmt.Fprintf(&buf, "\n%s\n", t.pal.heading("Values"))
		for _, row := range []struct {
			label string
			n     int
		}{
			{"strings", s.Strings},
			{"numbers", s.Numbers},
			{"booleans", s.Booleans},
			{"nulls", s.Nulls},
			{"objects", s.Objects},
			{"arrays", s.Arrays},
			{"total", s.TotalValues},
		} {
			fmt.Fprintf(&buf, "  %-9s %d\n", row.label, row.n)
		}
	}

	if len(rep.DuplicateKeys) > 0 {
		fmt.Fprintf(&buf, "\n%s\n", t.pal.heading("Duplicate keys"))
		for _, d := range rep.DuplicateKeys {
			fmt.Fprintf(&buf, "  %s  %s\n", d.Path, t.pal.key(d.Key))
		}
	}

	if rep.Structure != nil {
		fmt.Fprintf(&buf, "\n%s\n", t.pal.heading("Structure"))
		t.writeSummary(&buf, rep.Structure, 1)
	}

	// The output sink appends the final newline.
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// writeSummary prints one summary node at the given indent level, then its
// child structure below it.
func (t *Text) writeSummary(buf *bytes.Buffer, s *models.StructureSummary, level int) {
	indent := strings.Repeat("  ", level)
	fmt.Fprintf(buf, "%s%s\n", indent, t.pal.kind(t.label(s)))
	t.writeChildren(buf, s, level)
}

// writeChildren prints the structure nested under a node: one line per
// object key, recursing into object-shaped children and into the
// representative element shape of uniform arrays of objects.
func (t *Text) writeChildren(buf *bytes.Buffer, s *models.StructureSummary, level int) {
	switch s.Type {
	case models.KindObject:
		indent := strings.Repeat("  ", level+1)
		for _, ks := range s.Keys {
			fmt.Fprintf(buf, "%s%s %s\n", indent, t.pal.key(ks.Key+":"), t.pal.kind(t.label(ks.Summary)))
			t.writeChildren(buf, ks.Summary, level+1)
		}
	case models.KindArray:
		if elem := uniformObjectElement(s); elem != nil {
			t.writeChildren(buf, elem, level)
		}
	}
}

// label renders a one-line description of a summary node.
func (t *Text) label(s *models.StructureSummary) string {
	switch s.Type {
	case models.KindObject:
		if s.IsEmpty {
			return "object (empty)"
		}
		return "object"
	case models.KindArray:
		if s.IsEmpty {
			return "array (empty)"
		}
		types := make([]string, len(s.ElementTypes))
		for i, k := range s.ElementTypes {
			types[i] = string(k)
		}
		kind := strings.Join(types, "|")
		switch {
		case s.ElementSummary == nil:
			return fmt.Sprintf("array[%s] (mixed)", kind)
		case minimal(s.ElementSummary):
			return fmt.Sprintf("array[%s] (varied)", kind)
		default:
			return fmt.Sprintf("array[%s]", kind)
		}
	default:
		return string(s.Type)
	}
}

// uniformObjectElement returns the representative element shape of a
// uniform array of objects, or nil when there is nothing to descend into.
func uniformObjectElement(s *models.StructureSummary) *models.StructureSummary {
	e := s.ElementSummary
	if e != nil && !minimal(e) && e.Type == models.KindObject && !e.IsEmpty {
		return e
	}
	return nil
}

// minimal identifies the degraded same-base-type summary, which carries a
// type but no child structure.
func minimal(s *models.StructureSummary) bool {
	return s.Keys == nil && s.ElementTypes == nil &&
		(s.Type == models.KindObject || s.Type == models.KindArray)
}
