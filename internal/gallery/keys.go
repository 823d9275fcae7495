package gallery

import (
	"sync"
)

// Action is what a key press asks the viewer to do.
type Action int

const (
	ActionNone Action = iota
	ActionDismiss
	ActionAdvance
	ActionRetreat
)

func (a Action) String() string {
	switch a {
	case ActionDismiss:
		return "dismiss"
	case ActionAdvance:
		return "advance"
	case ActionRetreat:
		return "retreat"
	default:
		return "none"
	}
}

// KeyMap maps key names to actions. Names follow both the terminal
// convention ("esc", "right") and the DOM one ("Escape", "ArrowRight").
type KeyMap map[string]Action

func DefaultKeyMap() KeyMap {
	return KeyMap{
		"esc":        ActionDismiss,
		"Escape":     ActionDismiss,
		"right":      ActionAdvance,
		"ArrowRight": ActionAdvance,
		"l":          ActionAdvance,
		"left":       ActionRetreat,
		"ArrowLeft":  ActionRetreat,
		"h":          ActionRetreat,
	}
}

// Lookup returns ActionNone for unmapped keys.
func (m KeyMap) Lookup(key string) Action {
	return m[key]
}

// Listener receives every key dispatched while it is subscribed.
type Listener func(key string)

// KeySubscriber is a source of key events that listeners can attach to for
// a bounded time.
type KeySubscriber interface {
	Subscribe(fn Listener) (unsubscribe func())
}

type subscription struct {
	id uint64
	fn Listener
}

// KeySource fans key events out to its current listeners in subscription
// order. Listeners are called without the source's lock held, so a listener
// may unsubscribe itself or others while handling a key.
type KeySource struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

func NewKeySource() *KeySource {
	return &KeySource{}
}

var processKeys = NewKeySource()

// ProcessKeys is the key source shared by the whole process. Viewers attach
// to it unless given another one.
func ProcessKeys() *KeySource {
	return processKeys
}

// Subscribe attaches fn. The returned function detaches it and is safe to
// call more than once.
func (s *KeySource) Subscribe(fn Listener) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *KeySource) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Dispatch delivers key to a snapshot of the listeners attached when it was
// called and reports how many received it.
func (s *KeySource) Dispatch(key string) int {
	s.mu.Lock()
	snapshot := make([]Listener, len(s.subs))
	for i, sub := range s.subs {
		snapshot[i] = sub.fn
	}
	s.mu.Unlock()

	for _, fn := range snapshot {
		fn(key)
	}
	return len(snapshot)
}

// Len is the number of attached listeners.
func (s *KeySource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
