// Package render turns the plaintext forecast document into per-day cards.
//
// A document is a sequence of day blocks separated by blank lines. Each block
// starts with a date heading and a sunrise/moon line, followed by a
// pipe-delimited table whose second column is "ok" for good observing hours.
package render

import (
	"html"
	"regexp"
	"strings"
)

var blockSeparator = regexp.MustCompile(`\n{2,}`)

// okToken marks a highlighted table row.
const okToken = "ok"

// Row is one line of a day table.
type Row struct {
	Text string
	OK   bool
}

// DayCard is the rendered form of one day block.
type DayCard struct {
	Heading string
	SunMoon string

	// Table is the table body, always ending with exactly one blank line.
	Table string
	Rows  []Row
}

// Document is the full rendered forecast. An empty Document means the
// results container is cleared.
type Document struct {
	Cards []DayCard
}

// Empty reports whether there is nothing to display.
func (d Document) Empty() bool {
	return len(d.Cards) == 0
}

// Render parses text into a Document. It never fails: blocks with fewer than
// two lines get empty heading fields.
func Render(text string) Document {
	var doc Document
	if strings.TrimSpace(text) == "" {
		return doc
	}

	for _, block := range blockSeparator.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		doc.Cards = append(doc.Cards, parseBlock(block))
	}
	return doc
}

func parseBlock(block string) DayCard {
	lines := strings.Split(block, "\n")

	var card DayCard
	if len(lines) > 0 {
		card.Heading = lines[0]
	}
	if len(lines) > 1 {
		card.SunMoon = lines[1]
	}

	var body []string
	if len(lines) > 2 {
		body = lines[2:]
	}
	card.Table = strings.TrimRight(strings.Join(body, "\n"), "\n") + "\n\n"

	for _, line := range body {
		card.Rows = append(card.Rows, Row{Text: line, OK: isOKRow(line)})
	}
	return card
}

// isOKRow reports whether a table line's second column is the ok token.
func isOKRow(line string) bool {
	if !strings.Contains(line, "|") {
		return false
	}
	fields := strings.Split(line, "|")
	if len(fields) < 2 {
		return false
	}
	return strings.TrimSpace(fields[1]) == okToken
}

// HTML renders the card as markup. Text is escaped; ok rows are wrapped in a
// mark element.
func (c DayCard) HTML() string {
	var b strings.Builder
	b.WriteString(`<div class="day-card">`)
	b.WriteString(`<div class="day-header">`)
	b.WriteString(`<div class="day-heading">` + html.EscapeString(c.Heading) + `</div>`)
	b.WriteString(`<div class="day-sunmoon">` + html.EscapeString(c.SunMoon) + `</div>`)
	b.WriteString(`</div>`)
	b.WriteString(`<pre class="day-table">`)
	for _, row := range c.Rows {
		if row.OK {
			b.WriteString(`<mark class="ok-row">` + html.EscapeString(row.Text) + `</mark>`)
		} else {
			b.WriteString(html.EscapeString(row.Text))
		}
		b.WriteString("\n")
	}
	if len(c.Rows) == 0 {
		b.WriteString("\n")
	}
	b.WriteString("\n</pre></div>")
	return b.String()
}

// HTML renders every card in order.
func (d Document) HTML() string {
	var b strings.Builder
	for _, c := range d.Cards {
		b.WriteString(c.HTML())
	}
	return b.String()
}
