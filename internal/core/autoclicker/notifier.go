package autoclicker

import "sync"

// ActivationEvent announces that one side's active flag changed.
type ActivationEvent struct {
	Side   Side
	Active bool
}

// Notifier fans activation events out to subscribers. Delivery never blocks:
// a subscriber whose buffer is full misses the event.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan ActivationEvent
	closed bool
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan ActivationEvent)}
}

// Subscribe registers a listener. The returned function unsubscribes and
// closes the channel; calling it more than once is harmless. After Close the
// channel comes back already closed.
func (n *Notifier) Subscribe(buffer int) (<-chan ActivationEvent, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan ActivationEvent, buffer)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.mu.Unlock()

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if _, ok := n.subs[id]; !ok {
			return
		}
		delete(n.subs, id)
		close(ch)
	}
}

func (n *Notifier) Publish(event ActivationEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close unsubscribes everyone.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}
