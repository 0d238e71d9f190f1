// Package terminal renders the page to a terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/i474232898/weather-lookup/internal/prefs"
	"github.com/i474232898/weather-lookup/internal/render"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	okRowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// View writes page updates to w as they happen. It also remembers the
// suggestion list so a command line can pick an entry by number.
type View struct {
	mu sync.Mutex
	w  io.Writer

	suggestions []string
	forecast    render.Document
	err         string
}

func NewView(w io.Writer) *View {
	return &View{w: w}
}

func (v *View) SetError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = msg
	fmt.Fprintln(v.w, errorStyle.Render(msg))
}

func (v *View) ClearError() {
	v.mu.Lock()
	v.err = ""
	v.mu.Unlock()
}

// Err returns the message currently shown in the error banner.
func (v *View) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *View) ShowSuggestions(labels []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.suggestions = labels
	for i, l := range labels {
		fmt.Fprintf(v.w, "%s %s\n", mutedStyle.Render(fmt.Sprintf("[%d]", i)), l)
	}
}

func (v *View) HideSuggestions() {
	v.mu.Lock()
	v.suggestions = nil
	v.mu.Unlock()
}

// Suggestions returns the visible suggestion labels.
func (v *View) Suggestions() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.suggestions...)
}

func (v *View) SetCity(string) {}

func (v *View) SetSummary(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.w, headingStyle.Render(text))
}

func (v *View) SetLoading(on bool) {
	if !on {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.w, mutedStyle.Render("Loading..."))
}

func (v *View) ShowForecast(doc render.Document) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.forecast = doc
	if doc.Empty() {
		return
	}
	fmt.Fprint(v.w, Cards(doc))
}

func (v *View) SetLocating(on bool) {
	if !on {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.w, mutedStyle.Render("Locating…"))
}

func (v *View) SetToggles(p prefs.Preferences) {
	v.mu.Lock()
	defer v.mu.Unlock()
	clock := "24h"
	if p.Time12h == "1" {
		clock = "12h"
	}
	fmt.Fprintln(v.w, mutedStyle.Render(fmt.Sprintf("units: °%s, %s, %s", strings.ToUpper(p.UnitTemp), p.UnitWind, clock)))
}

// Cards renders every day card as a bordered box with ok rows highlighted.
func Cards(doc render.Document) string {
	var b strings.Builder
	for _, c := range doc.Cards {
		var body strings.Builder
		body.WriteString(headingStyle.Render(c.Heading))
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render(c.SunMoon))
		body.WriteString("\n\n")
		for _, row := range c.Rows {
			if row.OK {
				body.WriteString(okRowStyle.Render(row.Text))
			} else {
				body.WriteString(row.Text)
			}
			body.WriteString("\n")
		}
		b.WriteString(cardStyle.Render(strings.TrimRight(body.String(), "\n")))
		b.WriteString("\n")
	}
	return b.String()
}
