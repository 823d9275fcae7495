// Package gallery holds the lightbox state machine shared by every surface
// that lists media items: which item is shown full screen, wraparound
// navigation over the listed collection, and the keyboard routing that is
// attached only while the lightbox is open.
package gallery

import (
	"sync"
)

// State is what a renderer needs to draw the lightbox. When IsOpen is true,
// CurrentIndex is a valid index into the collection the viewer was last
// opened, navigated or reconciled with.
type State struct {
	IsOpen       bool
	CurrentIndex int
}

// Viewer is safe for concurrent use. Opening the viewer and attaching its
// KeyRouter happen under one lock, as do closing and detaching, so a key
// dispatched from another goroutine never sees one without the other.
type Viewer struct {
	mu       sync.Mutex
	state    State
	items    []MediaItem
	session  uint64
	detach   func()
	keys     KeySubscriber
	keymap   KeyMap
	onChange func(State)
}

type Option func(*Viewer)

// WithKeySource attaches the viewer's KeyRouter to src instead of
// ProcessKeys().
func WithKeySource(src KeySubscriber) Option {
	return func(v *Viewer) { v.keys = src }
}

func WithKeyMap(m KeyMap) Option {
	return func(v *Viewer) { v.keymap = m }
}

// WithOnChange registers fn to be called with the new state after every
// change. It runs outside the viewer's lock and may call back into it.
func WithOnChange(fn func(State)) Option {
	return func(v *Viewer) { v.onChange = fn }
}

// NewViewer returns a closed viewer.
func NewViewer(opts ...Option) *Viewer {
	v := &Viewer{
		keys:   ProcessKeys(),
		keymap: DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Viewer) IsOpen() bool {
	return v.State().IsOpen
}

// Open shows items[index]. An empty collection or an out-of-range index is
// ignored. Opening an already open viewer moves it to the new collection and
// index within the same session; its KeyRouter stays attached.
func (v *Viewer) Open(items []MediaItem, index int) {
	if index < 0 || index >= len(items) {
		return
	}

	v.mu.Lock()
	v.items = items
	v.state.CurrentIndex = index
	if !v.state.IsOpen {
		v.state.IsOpen = true
		v.session++
		router := &KeyRouter{viewer: v, session: v.session, keymap: v.keymap}
		v.detach = v.keys.Subscribe(router.Handle)
	}
	st := v.state
	v.mu.Unlock()

	v.notify(st)
}

// Close hides the lightbox and detaches the KeyRouter. Closing a closed
// viewer does nothing.
func (v *Viewer) Close() {
	v.mu.Lock()
	changed := v.closeLocked()
	st := v.state
	v.mu.Unlock()

	if changed {
		v.notify(st)
	}
}

// Next advances with wraparound over items. An empty collection closes the
// viewer; a closed viewer ignores the call.
func (v *Viewer) Next(items []MediaItem) {
	v.step(items, 1)
}

// Previous is the mirror of Next.
func (v *Viewer) Previous(items []MediaItem) {
	v.step(items, -1)
}

func (v *Viewer) step(items []MediaItem, delta int) {
	v.mu.Lock()
	changed := v.stepLocked(items, delta)
	st := v.state
	v.mu.Unlock()

	if changed {
		v.notify(st)
	}
}

// CurrentItem returns items[CurrentIndex] when the viewer is open and the
// index fits items. Renderers should call it with the collection they are
// about to draw, which may have been refreshed since Open.
func (v *Viewer) CurrentItem(items []MediaItem) (MediaItem, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.state.IsOpen || v.state.CurrentIndex >= len(items) {
		return MediaItem{}, false
	}
	return items[v.state.CurrentIndex], true
}

// Current is CurrentItem over the collection the viewer last saw.
func (v *Viewer) Current() (MediaItem, bool) {
	v.mu.Lock()
	items := v.items
	v.mu.Unlock()
	return v.CurrentItem(items)
}

// Reconcile re-checks the open index against a replacement collection and
// closes the viewer when the index no longer fits. Otherwise the viewer stays
// at the same index and keyboard navigation continues over items.
func (v *Viewer) Reconcile(items []MediaItem) {
	v.mu.Lock()
	if !v.state.IsOpen {
		v.mu.Unlock()
		return
	}
	if v.state.CurrentIndex < len(items) {
		v.items = items
		v.mu.Unlock()
		return
	}
	v.closeLocked()
	st := v.state
	v.mu.Unlock()

	v.notify(st)
}

// route performs a key action on behalf of the KeyRouter of session. Keys
// from a router whose session has ended are dropped even if the viewer has
// since been reopened.
func (v *Viewer) route(session uint64, action Action) bool {
	v.mu.Lock()
	if !v.state.IsOpen || v.session != session {
		v.mu.Unlock()
		return false
	}

	var changed bool
	switch action {
	case ActionDismiss:
		changed = v.closeLocked()
	case ActionAdvance:
		changed = v.stepLocked(v.items, 1)
	case ActionRetreat:
		changed = v.stepLocked(v.items, -1)
	}
	st := v.state
	v.mu.Unlock()

	if changed {
		v.notify(st)
	}
	return changed
}

func (v *Viewer) closeLocked() bool {
	if !v.state.IsOpen {
		return false
	}
	v.state = State{}
	v.items = nil
	if v.detach != nil {
		v.detach()
		v.detach = nil
	}
	return true
}

func (v *Viewer) stepLocked(items []MediaItem, delta int) bool {
	if !v.state.IsOpen {
		return false
	}
	n := len(items)
	if n == 0 {
		return v.closeLocked()
	}
	v.items = items
	v.state.CurrentIndex = ((v.state.CurrentIndex+delta)%n + n) % n
	return true
}

func (v *Viewer) notify(st State) {
	if v.onChange != nil {
		v.onChange(st)
	}
}
