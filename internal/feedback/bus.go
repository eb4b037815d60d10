// Package feedback is the single in-process publish channel producers use
// to tell the player (or the turn log) what just happened. It replaces the
// teacher's double-buffered cross-tick event bus: this model is
// single-threaded and has no tick lag to bridge, so one buffer drained
// once per frame is enough.
package feedback

import "fmt"

// Kind is a "CATEGORY/SUBCATEGORY" feedback tag, e.g. "COMBAT/STRIKE",
// "SYSTEM/OK", "MOVE/BLOCKED".
type Kind string

// Meta carries the optional structured fields a producer attaches to a
// line — position, amounts, item ids — for consumers (the turn log) that
// want more than the rendered text.
type Meta map[string]any

// Line is one pushed feedback entry.
type Line struct {
	Kind Kind
	Text string
	Meta Meta
}

// Bus is a single-buffer feedback channel: Push appends, Drain returns
// and clears everything pushed since the last Drain.
type Bus struct {
	lines []Line
}

// New builds an empty Bus.
func New() *Bus {
	return &Bus{}
}

// Push appends one feedback line. meta is optional — pass nil when there
// is nothing structured to attach.
func (b *Bus) Push(kind Kind, text string, meta Meta) {
	b.lines = append(b.lines, Line{Kind: kind, Text: text, Meta: meta})
}

// Pushf is Push with fmt-style text formatting.
func (b *Bus) Pushf(kind Kind, format string, args ...any) {
	b.Push(kind, fmt.Sprintf(format, args...), nil)
}

// Drain returns every line pushed since the last Drain and clears the
// buffer. Safe to call with nothing pending — returns nil.
func (b *Bus) Drain() []Line {
	if len(b.lines) == 0 {
		return nil
	}
	out := b.lines
	b.lines = nil
	return out
}

// Peek returns the pending lines without clearing the buffer, for
// observers (the turn log) that read without owning the drain.
func (b *Bus) Peek() []Line {
	return b.lines
}
