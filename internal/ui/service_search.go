package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ServiceSearch tracks an incremental, case-insensitive substring search over
// service names.
type ServiceSearch struct {
	term     string
	services []string
	matches  []string
	current  int
}

// NewServiceSearch starts an empty search over services.
func NewServiceSearch(services []string) *ServiceSearch {
	s := &ServiceSearch{services: services}
	s.update()
	return s
}

func (s *ServiceSearch) Term() string { return s.term }

func (s *ServiceSearch) Matches() []string { return s.matches }

// Add appends r to the search term.
func (s *ServiceSearch) Add(r rune) {
	s.term += string(r)
	s.update()
}

// Backspace removes the last rune of the search term.
func (s *ServiceSearch) Backspace() {
	if s.term == "" {
		return
	}
	runes := []rune(s.term)
	s.term = string(runes[:len(runes)-1])
	s.update()
}

// Next moves to the following match, wrapping around.
func (s *ServiceSearch) Next() {
	if len(s.matches) == 0 {
		return
	}
	s.current = (s.current + 1) % len(s.matches)
}

// Previous moves to the preceding match, wrapping around.
func (s *ServiceSearch) Previous() {
	if len(s.matches) == 0 {
		return
	}
	s.current = (s.current - 1 + len(s.matches)) % len(s.matches)
}

// Current returns the highlighted service, or "" when nothing matches.
func (s *ServiceSearch) Current() string {
	if s.current < 0 || s.current >= len(s.matches) {
		return ""
	}
	return s.matches[s.current]
}

func (s *ServiceSearch) update() {
	s.matches = s.matches[:0]
	needle := strings.ToLower(s.term)
	for _, name := range s.services {
		if strings.Contains(strings.ToLower(name), needle) {
			s.matches = append(s.matches, name)
		}
	}
	if len(s.matches) > 0 {
		s.current = 0
	} else {
		s.current = -1
	}
}

// Status describes the search for display.
func (s *ServiceSearch) Status() string {
	if s.term == "" {
		return "Find: type to search services (↑↓: next, Enter: select, Esc: cancel)"
	}
	if len(s.matches) == 0 {
		return fmt.Sprintf("Find: %s (no matches)", s.term)
	}
	return fmt.Sprintf("Find: %s [%d/%d] → %s", s.term, s.current+1, len(s.matches), s.Current())
}

// ServiceSearchOverlay shows a ServiceSearch in a high-contrast bar
type ServiceSearchOverlay struct {
	search     *ServiceSearch
	container  *fyne.Container
	label      *widget.Label
	onMove     func(service string)
	debugPrint func(format string, args ...interface{})
}

// NewServiceSearchOverlay creates a hidden overlay. onMove is called whenever
// the highlighted match changes.
func NewServiceSearchOverlay(onMove func(service string), debugPrint func(format string, args ...interface{})) *ServiceSearchOverlay {
	o := &ServiceSearchOverlay{onMove: onMove, debugPrint: debugPrint}

	o.label = widget.NewLabel("")
	o.label.TextStyle.Bold = true
	o.label.Truncation = fyne.TextTruncateEllipsis

	background := canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	if isDarkTheme() {
		background.FillColor = color.NRGBA{R: 220, G: 220, B: 220, A: 240}
		o.label.Importance = widget.HighImportance
	} else {
		background.FillColor = color.NRGBA{R: 40, G: 40, B: 40, A: 240}
		o.label.Importance = widget.MediumImportance
	}

	o.container = container.NewStack(background, container.NewPadded(o.label))
	o.container.Hide()
	return o
}

// isDarkTheme guesses the variant by comparing background and foreground
func isDarkTheme() bool {
	bg := color.NRGBAModel.Convert(theme.Color(theme.ColorNameBackground)).(color.NRGBA)
	fg := color.NRGBAModel.Convert(theme.Color(theme.ColorNameForeground)).(color.NRGBA)
	return int(bg.R)+int(bg.G)+int(bg.B) < int(fg.R)+int(fg.G)+int(fg.B)
}

// GetContainer returns the overlay's canvas object
func (o *ServiceSearchOverlay) GetContainer() *fyne.Container { return o.container }

// IsVisible reports whether a search is in progress
func (o *ServiceSearchOverlay) IsVisible() bool { return o.search != nil }

// Show starts a new search over services
func (o *ServiceSearchOverlay) Show(services []string) {
	o.search = NewServiceSearch(services)
	o.refresh(false)
	o.container.Show()
	o.debugPrint("ServiceSearch: started over %d services", len(services))
}

// Hide ends the search and returns the highlighted service
func (o *ServiceSearchOverlay) Hide() string {
	if o.search == nil {
		return ""
	}
	current := o.search.Current()
	o.search = nil
	o.container.Hide()
	o.debugPrint("ServiceSearch: closed at %q", current)
	return current
}

func (o *ServiceSearchOverlay) AddCharacter(r rune) {
	if o.search != nil {
		o.search.Add(r)
		o.refresh(true)
	}
}

func (o *ServiceSearchOverlay) RemoveLastCharacter() {
	if o.search != nil {
		o.search.Backspace()
		o.refresh(true)
	}
}

func (o *ServiceSearchOverlay) NextMatch() {
	if o.search != nil {
		o.search.Next()
		o.refresh(true)
	}
}

func (o *ServiceSearchOverlay) PreviousMatch() {
	if o.search != nil {
		o.search.Previous()
		o.refresh(true)
	}
}

func (o *ServiceSearchOverlay) refresh(moved bool) {
	o.label.SetText(o.search.Status())
	if moved && o.onMove != nil {
		if current := o.search.Current(); current != "" {
			o.onMove(current)
		}
	}
}
