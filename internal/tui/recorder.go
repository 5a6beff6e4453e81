package tui

import (
	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/render"
)

// Frame is one step of a replay: the event that happened and the table
// as it stood afterwards.
type Frame struct {
	Event string
	Board string
}

// Recorder subscribes to an engine's events and snapshots the watched
// round after each one. Events arrive on the engine's goroutine while the
// round is not being mutated, so reading the round here is safe.
type Recorder struct {
	renderer *render.Renderer
	round    *game.Round
	frames   []Frame
}

// NewRecorder creates a recorder drawing with renderer.
func NewRecorder(renderer *render.Renderer) *Recorder {
	return &Recorder{renderer: renderer}
}

// Watch switches to a new round and records its starting table.
func (rec *Recorder) Watch(r *game.Round, title string) {
	rec.round = r
	rec.frames = append(rec.frames, Frame{Event: title, Board: rec.renderer.Round(r)})
}

// OnEvent implements game.EventSubscriber.
func (rec *Recorder) OnEvent(event game.GameEvent) {
	board := ""
	if rec.round != nil {
		board = rec.renderer.Round(rec.round)
	}
	rec.frames = append(rec.frames, Frame{Event: rec.renderer.Event(event), Board: board})
}

// Frames returns the recorded frames in order.
func (rec *Recorder) Frames() []Frame {
	return rec.frames
}
