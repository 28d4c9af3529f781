package util

import (
	"fmt"
	"sync"
)

// NotFound is returned by lookups of values that were never added.
const NotFound = -1

// StringTable is a growable bijection between strings and dense integer
// codes. Codes are assigned in insertion order starting at 0 and are never
// reassigned.
type StringTable struct {
	mu     sync.RWMutex
	Enum   map[string]int
	Index  []string
	Frozen bool
}

func NewStringTable(capacity int) *StringTable {
	return &StringTable{
		Enum:  make(map[string]int, capacity),
		Index: make([]string, 0, capacity),
	}
}

func (t *StringTable) RebuildIndex() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Index = make([]string, len(t.Enum))
	for k, v := range t.Enum {
		t.Index[v] = k
	}
}

// Add returns the code of value, inserting it if it is new.
func (t *StringTable) Add(value string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if code, exists := t.Enum[value]; exists {
		return code
	}
	if t.Frozen {
		panic("Cannot add value to frozen string table: " + value)
	}
	code := len(t.Index)
	t.Enum[value] = code
	t.Index = append(t.Index, value)
	return code
}

// IndexOf returns the code of value or NotFound.
func (t *StringTable) IndexOf(value string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if code, exists := t.Enum[value]; exists {
		return code
	}
	return NotFound
}

func (t *StringTable) ValueOf(code int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if code < 0 || len(t.Index) <= code {
		panic(fmt.Sprintf("Unknown code requested: %v of %v", code, len(t.Index)))
	}
	return t.Index[code]
}

func (t *StringTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.Index)
}

func (t *StringTable) Freeze() {
	t.mu.Lock()
	t.Frozen = true
	t.mu.Unlock()
}
