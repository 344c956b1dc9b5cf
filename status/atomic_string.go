package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen bounds stored strings in bytes; long enough for a UUID
const MaxStringLen = 64

// AtomicString is a string metric readable from any goroutine
// Zero value reads as ""
type AtomicString struct {
	v atomic.Pointer[string]
}

// Store replaces the value; anything past MaxStringLen bytes is cut at a rune boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.v.Store(&val)
}

// Load returns the last stored value
func (s *AtomicString) Load() string {
	p := s.v.Load()
	if p == nil {
		return ""
	}
	return *p
}
