package form

import "sync"

// Observable holds a value and publishes every replacement to subscribers.
// Writers are serialized through publication: subscribers see values in the
// order they were stored, and the last notification always carries the
// current value. Subscribers run outside the value lock, so they may read the
// observable while notified but must not Set or Update it.
type Observable[T any] struct {
	publish   sync.Mutex
	mu        sync.RWMutex
	value     T
	observers map[int]func(T)
	nextID    int
}

// NewObservable creates an observable seeded with initial.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial, observers: make(map[int]func(T))}
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Set replaces the value and notifies subscribers in subscription order.
func (o *Observable[T]) Set(value T) {
	o.publish.Lock()
	defer o.publish.Unlock()

	o.mu.Lock()
	o.value = value
	observers := o.snapshotObservers()
	o.mu.Unlock()

	for _, fn := range observers {
		fn(value)
	}
}

// Update applies fn to the current value under the write lock. When fn
// reports a change the new value is stored and published.
func (o *Observable[T]) Update(fn func(current T) (T, bool)) bool {
	o.publish.Lock()
	defer o.publish.Unlock()

	o.mu.Lock()
	next, changed := fn(o.value)
	if !changed {
		o.mu.Unlock()
		return false
	}
	o.value = next
	observers := o.snapshotObservers()
	o.mu.Unlock()

	for _, observer := range observers {
		observer(next)
	}
	return true
}

// Subscribe registers fn and returns a function that removes it.
func (o *Observable[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.observers[id] = fn
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.observers, id)
			o.mu.Unlock()
		})
	}
}

func (o *Observable[T]) snapshotObservers() []func(T) {
	if len(o.observers) == 0 {
		return nil
	}
	// ids grow monotonically, so walking 0..nextID keeps subscription order.
	out := make([]func(T), 0, len(o.observers))
	for id := 0; id < o.nextID; id++ {
		if fn, ok := o.observers[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
