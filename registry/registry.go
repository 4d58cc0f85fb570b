// Package registry stores named objects, typically curves, for later lookup by handle.
//
// Objects live in an append-only arena and handles point at arena slots. Overwriting a handle
// appends a new slot, so a Ref captured earlier keeps resolving to the object it was taken from.
package registry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/meenmo/ycurve/curveerr"
)

// ReservedChars may not appear in a handle.
const ReservedChars = "@:,;\\/"

// Ref is a stable index into the arena.
type Ref struct {
	Handle string `json:"handle"`
	Index  int    `json:"index"`
}

// Store is a thread-safe handle registry. Concurrent writes to different handles are safe;
// writes to the same handle are last-write-wins and should be serialised by the caller.
type Store struct {
	mu      sync.RWMutex
	objects []any
	handles map[string]int
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for display strings.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		handles: make(map[string]int),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateHandle rejects empty handles and handles containing reserved characters.
func ValidateHandle(handle string) error {
	if strings.TrimSpace(handle) == "" {
		return fmt.Errorf("empty handle: %w", curveerr.ErrInvalidHandle)
	}
	if strings.ContainsAny(handle, ReservedChars) {
		return fmt.Errorf("handle %q contains one of %q: %w", handle, ReservedChars, curveerr.ErrInvalidHandle)
	}
	return nil
}

// Add stores obj under handle, replacing any previous entry, and returns the display string
// "@@handle::HH:MM:SS".
func (s *Store) Add(handle string, obj any) (string, error) {
	if err := ValidateHandle(handle); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, obj)
	s.handles[handle] = len(s.objects) - 1
	return DisplayString(handle, s.now()), nil
}

// DisplayString formats a handle with its creation time.
func DisplayString(handle string, at time.Time) string {
	return "@@" + handle + "::" + at.Format("15:04:05")
}

var handlePattern = regexp.MustCompile(`^@@([^:]+)`)

// CleanHandle extracts the bare handle from a display string; other input is returned trimmed.
func CleanHandle(s string) string {
	s = strings.TrimSpace(s)
	if m := handlePattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// Lookup returns a stable reference to the object currently stored under handle.
func (s *Store) Lookup(handle string) (Ref, error) {
	h := CleanHandle(handle)
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.handles[h]
	if !ok {
		return Ref{}, fmt.Errorf("%q: %w", h, curveerr.ErrCurveNotFound)
	}
	return Ref{Handle: h, Index: idx}, nil
}

// Get returns the object stored under handle, which may also be a display string.
func (s *Store) Get(handle string) (any, error) {
	ref, err := s.Lookup(handle)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ref)
}

// Resolve returns the object a Ref points at, regardless of later overwrites of its handle.
func (s *Store) Resolve(ref Ref) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ref.Index < 0 || ref.Index >= len(s.objects) {
		return nil, fmt.Errorf("ref %s#%d: %w", ref.Handle, ref.Index, curveerr.ErrCurveNotFound)
	}
	return s.objects[ref.Index], nil
}

// Handles lists the registered handles in sorted order.
func (s *Store) Handles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.handles))
	for h := range s.handles {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered handles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handles)
}
