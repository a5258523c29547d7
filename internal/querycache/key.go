package querycache

import "strings"

// Key identifies a logical resource, e.g. Key{"bookings", "user1"}.
type Key []string

func (k Key) String() string { return strings.Join(k, ":") }

// HasPrefix reports whether prefix matches the leading parts of k.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}
