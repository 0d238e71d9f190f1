package render

import (
	"strings"
	"testing"
)

const sampleDocument = `Monday, January 1
Sunrise 08:18 | Sunset 15:54 | Moon 72%
Hour | OK | Temp
  20 | ok |  -3
  21 | -  |  -4

Tuesday, January 2
Sunrise 08:18 | Sunset 15:55 | Moon 61%
Hour | OK | Temp
  20 | -  |  -1
`

func TestRenderSplitsDayBlocks(t *testing.T) {
	doc := Render(sampleDocument)
	if len(doc.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(doc.Cards))
	}

	first := doc.Cards[0]
	if first.Heading != "Monday, January 1" {
		t.Fatalf("unexpected heading %q", first.Heading)
	}
	if !strings.HasPrefix(first.SunMoon, "Sunrise 08:18") {
		t.Fatalf("unexpected sun/moon line %q", first.SunMoon)
	}
	if len(first.Rows) != 3 {
		t.Fatalf("expected 3 table rows, got %d", len(first.Rows))
	}
	if first.Rows[0].OK || !first.Rows[1].OK || first.Rows[2].OK {
		t.Fatalf("unexpected highlight flags: %+v", first.Rows)
	}
}

func TestRenderBlockCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"no separators", "a\nb\nc", 1},
		{"three segments", "a\n\nb\n\nc", 3},
		{"long separator", "a\n\n\n\nb", 2},
		{"empty segments dropped", "\n\na\n\n   \n\nb\n\n", 2},
		{"empty input", "", 0},
		{"whitespace input", "  \n\n \t ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Render(tt.text).Cards); got != tt.want {
				t.Fatalf("expected %d cards, got %d", tt.want, got)
			}
		})
	}
}

func TestRenderShortBlocks(t *testing.T) {
	doc := Render("only heading")
	if len(doc.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(doc.Cards))
	}
	c := doc.Cards[0]
	if c.Heading != "only heading" || c.SunMoon != "" {
		t.Fatalf("unexpected card %+v", c)
	}
	if c.Table != "\n\n" {
		t.Fatalf("expected table to be a single blank line, got %q", c.Table)
	}
}

func TestTableEndsWithOneBlankLine(t *testing.T) {
	c := Render("h\ns\nrow1\nrow2").Cards[0]
	if c.Table != "row1\nrow2\n\n" {
		t.Fatalf("unexpected table text %q", c.Table)
	}
}

func TestIsOKRow(t *testing.T) {
	if !isOKRow("2024-01-01 | ok | sunny") {
		t.Fatal("expected ok row to be highlighted")
	}
	if isOKRow("2024-01-01 | - | rain") {
		t.Fatal("expected dash row not to be highlighted")
	}
	if isOKRow("ok") {
		t.Fatal("expected line without separator not to be highlighted")
	}
	if isOKRow("okay | okay") {
		t.Fatal("expected non-exact token not to be highlighted")
	}
}

func TestHTMLEscapesAndMarks(t *testing.T) {
	doc := Render("<b>Day</b>\nsun & moon\n 1 | ok | <x>\n 2 | - | y")
	out := doc.HTML()

	if strings.Contains(out, "<b>Day</b>") || !strings.Contains(out, "&lt;b&gt;Day&lt;/b&gt;") {
		t.Fatalf("heading not escaped: %s", out)
	}
	if !strings.Contains(out, "sun &amp; moon") {
		t.Fatalf("sun/moon not escaped: %s", out)
	}
	if !strings.Contains(out, `<mark class="ok-row"> 1 | ok | &lt;x&gt;</mark>`) {
		t.Fatalf("ok row not marked: %s", out)
	}
	if strings.Contains(out, `<mark class="ok-row"> 2`) {
		t.Fatalf("dash row should not be marked: %s", out)
	}
}

func TestEmptyDocumentHTML(t *testing.T) {
	doc := Render("   ")
	if !doc.Empty() || doc.HTML() != "" {
		t.Fatalf("expected empty output, got %q", doc.HTML())
	}
}
