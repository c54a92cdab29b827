package treekv

import "sync"

// Entry is the built-in [Value] implementation: a string payload with an
// optional free-text description. All accessors are safe for concurrent
// use; nodes hand out deep clones, so an Entry is never shared between a
// tree and its callers unless the caller shares it deliberately.
type Entry struct {
	key         string
	value       string
	description string
	mu          sync.RWMutex
}

// NewEntry creates an entry with the given key and payload
func NewEntry(key, value string) *Entry {
	return &Entry{key: key, value: value}
}

// NewEntryWithDescription creates an entry carrying a description
func NewEntryWithDescription(key, value, description string) *Entry {
	return &Entry{key: key, value: value, description: description}
}

func (e *Entry) Key() string {
	return e.key
}

func (e *Entry) Value() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value
}

// SetValue replaces the payload and returns the previous one
func (e *Entry) SetValue(value string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.value
	e.value = value
	return prev
}

func (e *Entry) Description() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.description
}

// SetDescription replaces the description and returns the previous one
func (e *Entry) SetDescription(description string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.description
	e.description = description
	return prev
}

// DeepClone returns an independent copy of the entry
func (e *Entry) DeepClone() Value {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return &Entry{key: e.key, value: e.value, description: e.description}
}

// Equal reports whether other is an Entry with the same key, payload,
// and description. The two mutexes are never held at the same time:
// each side is snapshotted under its own lock, so comparing a pair from
// two goroutines in opposite directions cannot deadlock
func (e *Entry) Equal(other Value) bool {
	o, ok := other.(*Entry)
	if !ok {
		return false
	}
	if e == o {
		return true
	}
	e.mu.RLock()
	value, description := e.value, e.description
	e.mu.RUnlock()

	o.mu.RLock()
	defer o.mu.RUnlock()
	return e.key == o.key && value == o.value && description == o.description
}
