// Package query is the read cache and mutation layer between resource
// clients and pages. Reads are keyed by hierarchical keys, deduplicated,
// and served stale-while-revalidate; successful mutations invalidate key
// prefixes so affected reads refetch.
package query

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// Conventional operation segments
const (
	OpList   = "list"
	OpDetail = "detail"
)

// Key identifies a cached read as [resource, operation, params...]
type Key []string

// NewKey builds a key from its segments
func NewKey(resource string, parts ...string) Key {
	return append(Key{resource}, parts...)
}

// ListKey is the key of a list read with the given parameters
func ListKey(resource string, params shared.Params) Key {
	return Key{resource, OpList, params.Encode()}
}

// DetailKey is the key of a single resource read
func DetailKey(resource string, id any) Key {
	return Key{resource, OpDetail, fmt.Sprint(id)}
}

// Prefix builds an invalidation prefix
func Prefix(resource string, ops ...string) Key {
	return NewKey(resource, ops...)
}

// Resource returns the first segment
func (k Key) Resource() string {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}

// Append returns a new key with parts added
func (k Key) Append(parts ...string) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, parts...)
}

// HasPrefix reports whether every segment of prefix matches k
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

// String joins the escaped segments with "/"
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, s := range k {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}

// MatchesPrefix is HasPrefix on encoded keys. Stores use it to apply
// invalidation to string keys.
func MatchesPrefix(key, prefix string) bool {
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(key, prefix) {
		return false
	}
	return len(key) == len(prefix) || key[len(prefix)] == '/'
}

// ParseKey reverses String
func ParseKey(s string) Key {
	if s == "" {
		return Key{}
	}
	parts := strings.Split(s, "/")
	out := make(Key, len(parts))
	for i, p := range parts {
		if u, err := url.PathUnescape(p); err == nil {
			out[i] = u
		} else {
			out[i] = p
		}
	}
	return out
}
