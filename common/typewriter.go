package common

import (
	"strings"
	"time"
)

const (
	HintCharInterval = 30 * time.Millisecond
	HintColumns      = 96
)

// Typewriter reveals a word-wrapped hint one character per interval.
type Typewriter struct {
	Interval time.Duration
	Columns  int

	full    []rune
	shown   int
	started time.Time
	active  bool
}

func NewTypewriter(interval time.Duration, columns int) *Typewriter {
	return &Typewriter{Interval: interval, Columns: columns}
}

// Show starts revealing text from now. Empty text clears the hint.
func (t *Typewriter) Show(text string, now time.Time) {
	if strings.TrimSpace(text) == "" {
		t.Clear()
		return
	}
	t.full = []rune(strings.Join(WrapWords(text, t.Columns), "\n"))
	t.started = now
	t.active = true
	t.shown = 0
	t.Update(now)
}

func (t *Typewriter) Clear() {
	t.full = nil
	t.shown = 0
	t.active = false
}

// Update advances the reveal to now.
func (t *Typewriter) Update(now time.Time) {
	if !t.active || t.shown >= len(t.full) {
		return
	}
	n := len(t.full)
	if t.Interval > 0 {
		n = 1 + int(now.Sub(t.started)/t.Interval)
	}
	if n > len(t.full) {
		n = len(t.full)
	}
	if n > t.shown {
		t.shown = n
	}
}

// Skip reveals the rest of the text at once.
func (t *Typewriter) Skip() {
	t.shown = len(t.full)
}

// Text returns the revealed part.
func (t *Typewriter) Text() string {
	return string(t.full[:t.shown])
}

// Typing reports whether characters are still being revealed.
func (t *Typewriter) Typing() bool {
	return t.active && t.shown < len(t.full)
}

func (t *Typewriter) Active() bool {
	return t.active
}

// Lines returns the line count of the full wrapped text.
func (t *Typewriter) Lines() int {
	if !t.active {
		return 0
	}
	return strings.Count(string(t.full), "\n") + 1
}

// WrapWords breaks text into lines of at most columns characters at word
// boundaries. A word longer than columns gets a line of its own.
func WrapWords(text string, columns int) []string {
	words := strings.Fields(text)
	if columns <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var lines []string
	current := ""
	for _, word := range words {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if len([]rune(test)) > columns && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = test
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
