// Package taglib interns YAML tag URIs to compact ids and expands
// shorthand tag handles (`!`, `!!`, `!name!`) against a library's
// configurable secondary prefix and any `%TAG` directives in scope.
package taglib

import (
	"fmt"
	"sync"
)

// ID is an opaque, idempotently-interned tag identifier.
type ID uint32

// The two well-known non-specific tags every library pre-registers.
const (
	// NonSpecific is the tag of a node introduced with a bare "!" —
	// "resolve this as a string, regardless of content".
	NonSpecific ID = 1
	// Unresolved is the tag of a node with no tag at all — "guess a type
	// from content using the core schema / TypeHint".
	Unresolved ID = 2
)

const (
	nonSpecificURI = "!"
	unresolvedURI  = "?"
)

// DefaultSecondaryPrefix is the URI prefix `!!shorthand` expands
// against unless a library is configured otherwise.
const DefaultSecondaryPrefix = "tag:yaml.org,2002:"

// Core-schema URIs, always pre-registered.
const (
	StrURI   = DefaultSecondaryPrefix + "str"
	SeqURI   = DefaultSecondaryPrefix + "seq"
	MapURI   = DefaultSecondaryPrefix + "map"
	NullURI  = DefaultSecondaryPrefix + "null"
	BoolURI  = DefaultSecondaryPrefix + "bool"
	IntURI   = DefaultSecondaryPrefix + "int"
	FloatURI = DefaultSecondaryPrefix + "float"
)

// Extended-schema URIs, pre-registered only by NewExtended.
const (
	OMapURI      = DefaultSecondaryPrefix + "omap"
	PairsURI     = DefaultSecondaryPrefix + "pairs"
	SetURI       = DefaultSecondaryPrefix + "set"
	BinaryURI    = DefaultSecondaryPrefix + "binary"
	MergeURI     = DefaultSecondaryPrefix + "merge"
	TimestampURI = DefaultSecondaryPrefix + "timestamp"
	ValueURI     = DefaultSecondaryPrefix + "value"
	YAMLURI      = DefaultSecondaryPrefix + "yaml"
)

var coreURIs = []string{StrURI, SeqURI, MapURI, NullURI, BoolURI, IntURI, FloatURI}

var extendedURIs = append(append([]string{}, coreURIs...),
	OMapURI, PairsURI, SetURI, BinaryURI, MergeURI, TimestampURI, ValueURI, YAMLURI)

// Library interns tag URIs to ids and resolves `%TAG` shorthand. It
// outlives any single parser/presenter; its table only ever grows.
type Library struct {
	mu              sync.RWMutex
	byURI           map[string]ID
	byID            []string // index 0 unused, so ID values are 1-based
	secondaryPrefix string
}

func newEmpty() *Library {
	l := &Library{
		byURI:           make(map[string]ID),
		byID:            []string{""},
		secondaryPrefix: DefaultSecondaryPrefix,
	}
	l.intern(nonSpecificURI)  // -> NonSpecific (1)
	l.intern(unresolvedURI)   // -> Unresolved (2)
	return l
}

// NewCore builds a library with only the seven core-schema tags
// pre-registered (str, seq, map, null, bool, int, float).
func NewCore() *Library {
	l := newEmpty()
	for _, u := range coreURIs {
		l.intern(u)
	}
	return l
}

// NewExtended builds a library with the core tags plus the optional
// extended set (omap, pairs, set, binary, merge, timestamp, value, yaml).
func NewExtended() *Library {
	l := newEmpty()
	for _, u := range extendedURIs {
		l.intern(u)
	}
	return l
}

func (l *Library) intern(uri string) ID {
	if id, ok := l.byURI[uri]; ok {
		return id
	}
	id := ID(len(l.byID))
	l.byID = append(l.byID, uri)
	l.byURI[uri] = id
	return id
}

// Register interns uri, returning the same ID on every call with an
// equal uri (tag interning idempotence, spec §8).
func (l *Library) Register(uri string) ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intern(uri)
}

// URI returns the string a previously registered ID stands for.
func (l *Library) URI(id ID) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if int(id) <= 0 || int(id) >= len(l.byID) {
		return "", false
	}
	return l.byID[id], true
}

// SetSecondaryPrefix changes the URI prefix `!!suffix` expands against.
// The default is "tag:yaml.org,2002:".
func (l *Library) SetSecondaryPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.secondaryPrefix = prefix
}

// SecondaryPrefix returns the library's current secondary prefix.
func (l *Library) SecondaryPrefix() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.secondaryPrefix
}

// HandleTable maps tag handles ("!", "!!", "!name!") to URI prefixes,
// as accumulated from the default directives plus any `%TAG` directives
// a document declared.
type HandleTable struct {
	prefixes map[string]string
}

// DefaultHandles returns the handle table implied by the spec's
// built-in defaults: "!" expands to itself, "!!" expands to the
// library's secondary prefix.
func (l *Library) DefaultHandles() *HandleTable {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &HandleTable{prefixes: map[string]string{
		"!":  "!",
		"!!": l.secondaryPrefix,
	}}
}

// Declare records a `%TAG handle prefix` directive, overriding any
// earlier declaration for the same handle within the table's lifetime
// (a document's directives replace the defaults, they don't merge with
// conflicting ones).
func (t *HandleTable) Declare(handle, prefix string) {
	if t.prefixes == nil {
		t.prefixes = map[string]string{}
	}
	t.prefixes[handle] = prefix
}

// Expand resolves a shorthand tag ("handle" + "suffix", e.g. "!!" + "str")
// to a full URI using the table's current handle->prefix mapping.
func (t *HandleTable) Expand(handle, suffix string) (string, error) {
	prefix, ok := t.prefixes[handle]
	if !ok {
		return "", fmt.Errorf("taglib: tag handle %q was not declared", handle)
	}
	return prefix + suffix, nil
}

// Shorthand computes the handle/suffix pair the presenter should emit
// for uri, preferring "!!" compression against the secondary prefix,
// then "!local" for bang-prefixed URIs, and reporting ok=false when the
// URI needs to be emitted verbatim (`!<uri>`).
func (l *Library) Shorthand(uri string) (handle, suffix string, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	switch {
	case uri == nonSpecificURI || uri == unresolvedURI:
		return "", "", false
	case len(uri) > len(l.secondaryPrefix) && uri[:len(l.secondaryPrefix)] == l.secondaryPrefix:
		return "!!", uri[len(l.secondaryPrefix):], true
	case len(uri) > 0 && uri[0] == '!':
		return "!", uri[1:], true
	default:
		return "", "", false
	}
}
