// Package sigilcrypto provides the randomness boundary and secure-memory
// helpers used by the CLI and the bundle package: a single injectable
// entropy source, a best-effort mlock+zero byte container, and password-based
// encryption for the bundle export/import path.
package sigilcrypto

import (
	"runtime"
	"sync"
)

// SecureBytes wraps a sensitive byte slice with best-effort mlock and
// explicit zeroing on release. The CLI's generate and recover commands keep
// the master secret in one, and the bundle package keeps its serialized
// share list in one; slip39.Generate and slip39.Combine do not use it.
type SecureBytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// NewSecureBytes allocates a zeroed SecureBytes of the given size, locking
// its backing memory when the host platform supports it.
func NewSecureBytes(size int) (*SecureBytes, error) {
	data := make([]byte, size)

	sb := &SecureBytes{data: data}
	sb.locked = mlock(data)

	runtime.SetFinalizer(sb, func(s *SecureBytes) {
		s.Destroy()
	})

	return sb, nil
}

// SecureBytesFromSlice copies data into a freshly allocated SecureBytes.
// It does not zero the caller's slice; callers that need that should do it
// themselves once the copy is made.
func SecureBytesFromSlice(data []byte) (*SecureBytes, error) {
	sb, err := NewSecureBytes(len(data))
	if err != nil {
		return nil, err
	}
	copy(sb.data, data)
	return sb, nil
}

// Bytes returns the underlying slice, or nil once Destroy has run.
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// IsLocked reports whether the backing memory is mlocked.
func (s *SecureBytes) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Len returns the length of the data, or 0 once destroyed.
func (s *SecureBytes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Destroy zeros and unlocks the backing memory. Safe to call more than once.
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return
	}

	for i := range s.data {
		s.data[i] = 0
	}

	if s.locked {
		munlock(s.data)
		s.locked = false
	}

	s.data = nil
	runtime.SetFinalizer(s, nil)
}
