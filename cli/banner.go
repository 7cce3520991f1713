package cli

import (
	"os"
	"strings"
	"sync/atomic"
	"unicode"

	"golang.org/x/term"
)

// Text alignment inside a Banner.
const (
	AlignLeft = iota
	AlignCenter
	AlignRight
)

// DefaultTerminalWidth is used when stdout is not a terminal.
const DefaultTerminalWidth = 80

const (
	frameColumns = 2
	ellipsis     = "…"
)

// frame is the set of runes a box is drawn with.
type frame struct {
	topLeft, top, topRight          string
	side                            string
	ruleLeft, rule, ruleRight       string
	bottomLeft, bottom, bottomRight string
}

var box = frame{ //nolint:gochecknoglobals
	topLeft: "╒", top: "═", topRight: "╕",
	side:     "│",
	ruleLeft: "├", rule: "─", ruleRight: "┤",
	bottomLeft: "└", bottom: "─", bottomRight: "┘",
}

var suppressBanner atomic.Bool //nolint:gochecknoglobals

// SuppressBanners turns box drawing off (or back on) for every later Banner
// and Summary call, for output that is piped or parsed.
func SuppressBanners(suppress bool) {
	suppressBanner.Store(suppress)
}

// TerminalWidth is the column count of stdout, or DefaultTerminalWidth when
// stdout is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec
	if err != nil || w <= 0 {
		return DefaultTerminalWidth
	}

	return w
}

// Banner draws s, which may span several lines, in a box width columns wide.
// Lines that do not fit are cut short with an ellipsis. An unknown alignment
// or a width too narrow for the frame yields "".
func Banner(s string, width int, alignment int) string {
	if suppressBanner.Load() {
		return s + "\n"
	}

	inner := width - frameColumns
	if inner <= 0 || alignment < AlignLeft || alignment > AlignRight {
		return ""
	}

	var b strings.Builder

	box.edge(&b, box.topLeft, box.top, box.topRight, inner)

	for _, line := range splitLines(s) {
		box.row(&b, fit(line, inner, alignment))
	}

	box.edge(&b, box.bottomLeft, box.bottom, box.bottomRight, inner)

	return strings.TrimSuffix(b.String(), "\n")
}

// Field is one labelled row of a Summary.
type Field struct {
	Label string
	Value string
}

// Summary draws title centered above a rule, then one row per field with
// the label flush left and the value flush right. Values win over labels
// when a row is too narrow for both.
func Summary(title string, fields []Field, width int) string {
	if suppressBanner.Load() {
		var b strings.Builder

		b.WriteString(title + "\n")

		for _, f := range fields {
			b.WriteString(f.Label + ": " + f.Value + "\n")
		}

		return b.String()
	}

	inner := width - frameColumns
	if inner <= 0 {
		return ""
	}

	var b strings.Builder

	box.edge(&b, box.topLeft, box.top, box.topRight, inner)

	for _, line := range splitLines(title) {
		box.row(&b, fit(line, inner, AlignCenter))
	}

	if len(fields) > 0 {
		box.edge(&b, box.ruleLeft, box.rule, box.ruleRight, inner)
	}

	for _, f := range fields {
		value := fit(f.Value, inner, AlignRight)
		room := inner - columns(f.Value) - 1

		if room <= 0 {
			box.row(&b, value)

			continue
		}

		label := fit(f.Label, room, AlignLeft)
		box.row(&b, label+value[room:])
	}

	box.edge(&b, box.bottomLeft, box.bottom, box.bottomRight, inner)

	return strings.TrimSuffix(b.String(), "\n")
}

func (f frame) edge(b *strings.Builder, left, fill, right string, inner int) {
	b.WriteString(left + strings.Repeat(fill, inner) + right + "\n")
}

func (f frame) row(b *strings.Builder, text string) {
	b.WriteString(f.side + text + f.side + "\n")
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// columns counts the graphic runes of s.
func columns(s string) int {
	n := 0

	for _, r := range s {
		if unicode.IsGraphic(r) {
			n++
		}
	}

	return n
}

// fit pads or truncates s to exactly width columns.
func fit(s string, width, alignment int) string {
	n := columns(s)
	if n > width {
		s, n = truncate(s, width-1)+ellipsis, width
	}

	pad := width - n

	switch alignment {
	case AlignCenter:
		return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2) //nolint:mnd
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// truncate keeps the first n graphic runes of s.
func truncate(s string, n int) string {
	var b strings.Builder

	for _, r := range s {
		if unicode.IsGraphic(r) {
			if n == 0 {
				break
			}

			n--
		}

		b.WriteRune(r)
	}

	return b.String()
}
