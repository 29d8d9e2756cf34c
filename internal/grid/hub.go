package grid

// EventKind classifies raw input published on a Hub.
type EventKind int

const (
	EventKey EventKind = iota
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventClick
)

// Event is one raw input event.
type Event struct {
	Kind EventKind
	Key  KeyEvent

	// Pointer events.
	X, Y   int
	Cell   Cell
	OnCell bool
	Shift  bool
}

// Handler reacts to an event.
type Handler func(Event) Result

type subscription struct {
	id int
	fn Handler
}

// Hub is a scoped listener registry. Hosts publish raw input into it and
// components subscribe with a handle they use to unregister.
type Hub struct {
	subs   map[EventKind][]subscription
	nextID int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[EventKind][]subscription)}
}

// Subscribe registers fn for one event kind and returns its unregister
// handle. Calling the handle twice is harmless.
func (h *Hub) Subscribe(kind EventKind, fn Handler) (unsubscribe func()) {
	h.nextID++
	id := h.nextID
	h.subs[kind] = append(h.subs[kind], subscription{id: id, fn: fn})
	return func() {
		list := h.subs[kind]
		for i, s := range list {
			if s.id == id {
				h.subs[kind] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every subscriber of its kind and merges the results.
func (h *Hub) Publish(ev Event) Result {
	var res Result
	for _, s := range h.subs[ev.Kind] {
		r := s.fn(ev)
		res.Handled = res.Handled || r.Handled
		res.PreventDefault = res.PreventDefault || r.PreventDefault
	}
	return res
}

// Len returns the number of subscribers of a kind.
func (h *Hub) Len(kind EventKind) int { return len(h.subs[kind]) }
