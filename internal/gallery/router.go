package gallery

// KeyRouter turns key events into viewer actions for one open session. A
// viewer creates a fresh router each time it opens and detaches it when it
// closes; a router that outlives its session ignores every key.
type KeyRouter struct {
	viewer  *Viewer
	session uint64
	keymap  KeyMap
}

// Handle is the Listener attached to the key source. Unmapped keys are
// ignored.
func (r *KeyRouter) Handle(key string) {
	action := r.keymap.Lookup(key)
	if action == ActionNone {
		return
	}
	r.viewer.route(r.session, action)
}
