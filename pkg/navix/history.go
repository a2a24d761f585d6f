package navix

// defaultMaxHistory bounds navigation history when Options leaves it
// unset.
const defaultMaxHistory = 50

// History is the ordered, deduplicated sequence of visited fleet keys,
// most recent last. Re-visiting a key moves it to the end; the oldest
// entries are evicted beyond the configured maximum.
type History struct {
	entries []string
	maxSize int
}

// NewHistory returns an empty history bounded to maxSize entries
// (defaultMaxHistory when maxSize is not positive).
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = defaultMaxHistory
	}
	return &History{
		entries: make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Touch records a visit: an existing entry moves to the end, a new one
// is appended, and the oldest entry is evicted past the bound.
func (h *History) Touch(key string) {
	for i, k := range h.entries {
		if k == key {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	h.entries = append(h.entries, key)

	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Peek returns the most recent entry without removing it.
func (h *History) Peek() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Remove drops every occurrence of key.
func (h *History) Remove(key string) {
	kept := h.entries[:0]
	for _, k := range h.entries {
		if k != key {
			kept = append(kept, k)
		}
	}
	h.entries = kept
}

// RemoveFunc drops every entry the predicate matches.
func (h *History) RemoveFunc(match func(key string) bool) {
	kept := h.entries[:0]
	for _, k := range h.entries {
		if !match(k) {
			kept = append(kept, k)
		}
	}
	h.entries = kept
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}
