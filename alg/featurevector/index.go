package featurevector

import "sync"

// Index assigns dense codes to packed feature keys in first-seen order.
// Once frozen it never mints new codes.
type Index struct {
	mu     sync.RWMutex
	Codes  map[uint64]int
	Frozen bool
}

func NewIndex(capacity int) *Index {
	return &Index{Codes: make(map[uint64]int, capacity)}
}

// Add returns the code for key, assigning the next free code if the key is
// new.
func (i *Index) Add(key uint64) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	if code, exists := i.Codes[key]; exists {
		return code
	}
	if i.Frozen {
		panic("Cannot add feature to frozen index")
	}
	code := len(i.Codes)
	i.Codes[key] = code
	return code
}

// Get returns the code for key or NotFound.
func (i *Index) Get(key uint64) int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if code, exists := i.Codes[key]; exists {
		return code
	}
	return NotFound
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.Codes)
}

func (i *Index) Freeze() {
	i.mu.Lock()
	i.Frozen = true
	i.mu.Unlock()
}
