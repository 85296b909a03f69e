package board

import (
	"sync"
)

// MobileBreakpoint is the viewport width below which tap mode is used.
const MobileBreakpoint = 1024

// Mode is how a client moves players onto picks.
type Mode string

const (
	ModeDrag Mode = "drag"
	ModeTap  Mode = "tap"
)

// ModeFor picks tap mode for narrow or touch devices.
func ModeFor(width int, touch bool) Mode {
	if width < MobileBreakpoint || touch {
		return ModeTap
	}
	return ModeDrag
}

// Interaction turns a client's gestures into board actions. The zero-value
// action result (nil, false) means the gesture does nothing.
type Interaction interface {
	Mode() Mode
	// Select starts a drag, or taps a player in tap mode.
	Select(playerID string)
	Selected() string
	// PickTarget drops or taps onto a pick.
	PickTarget(round, pickNumber int) (Action, bool)
	// WatchlistTarget drops onto, or taps the toggle for, the watchlist.
	WatchlistTarget() (Action, bool)
	// RankTarget drops onto a position in the ranked list.
	RankTarget(index int) (Action, bool)
	// Cancel ends a drag or clears a tap selection.
	Cancel()
}

// NewInteraction returns the session for the client's device.
func NewInteraction(width int, touch bool) Interaction {
	if ModeFor(width, touch) == ModeTap {
		return &TapSession{}
	}
	return &DragSession{}
}

// DragSession models desktop drag and drop. Every drop ends the drag.
type DragSession struct {
	mu      sync.Mutex
	dragged string
}

func (d *DragSession) Mode() Mode { return ModeDrag }

func (d *DragSession) Select(playerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dragged = playerID
}

func (d *DragSession) Selected() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dragged
}

func (d *DragSession) take() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.dragged
	d.dragged = ""
	return id
}

func (d *DragSession) PickTarget(round, pickNumber int) (Action, bool) {
	id := d.take()
	if id == "" {
		return nil, false
	}
	return AssignPlayer{Round: round, PickNumber: pickNumber, PlayerID: id}, true
}

func (d *DragSession) WatchlistTarget() (Action, bool) {
	id := d.take()
	if id == "" {
		return nil, false
	}
	return AddToWatchlist{PlayerID: id}, true
}

// RankTarget keeps the drag alive so the player can be dropped on a pick
// after being re-ranked.
func (d *DragSession) RankTarget(index int) (Action, bool) {
	id := d.Selected()
	if id == "" {
		return nil, false
	}
	return MovePlayerTo{PlayerID: id, TargetIndex: index}, true
}

func (d *DragSession) Cancel() {
	d.take()
}

// TapSession models tap-to-select, tap-to-assign on touch devices.
type TapSession struct {
	mu       sync.Mutex
	selected string
}

func (t *TapSession) Mode() Mode { return ModeTap }

// Select toggles: tapping the selected player again deselects it.
func (t *TapSession) Select(playerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == playerID {
		t.selected = ""
		return
	}
	t.selected = playerID
}

func (t *TapSession) Selected() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

func (t *TapSession) PickTarget(round, pickNumber int) (Action, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == "" {
		return nil, false
	}
	id := t.selected
	t.selected = ""
	return AssignPlayer{Round: round, PickNumber: pickNumber, PlayerID: id}, true
}

// WatchlistTarget toggles the selected player and keeps the selection.
func (t *TapSession) WatchlistTarget() (Action, bool) {
	id := t.Selected()
	if id == "" {
		return nil, false
	}
	return ToggleWatchlist{PlayerID: id}, true
}

// RankTarget is not available in tap mode; use MovePlayer instead.
func (t *TapSession) RankTarget(int) (Action, bool) {
	return nil, false
}

func (t *TapSession) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = ""
}
