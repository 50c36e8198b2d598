package query

import (
	"sort"
	"strings"
)

// Key identifies a cached read: a resource family plus its request
// parameters. Keys with equal canonical strings share cache slots and
// in-flight fetches.
type Key struct {
	Resource Resource
	Params   map[string]string
}

// ListKey builds the key for a filtered list read.
func ListKey(resource Resource, params map[string]string) Key {
	return Key{Resource: resource, Params: params}
}

// ItemKey builds the key for a single-entity read.
func ItemKey(resource Resource, id string) Key {
	return Key{Resource: resource, Params: map[string]string{"id": id}}
}

// String returns the canonical cache key, with parameters sorted so that
// equal requests always map to the same slot.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(string(k.Resource))

	if len(k.Params) == 0 {
		return b.String()
	}

	names := make([]string, 0, len(k.Params))
	for name := range k.Params {
		if k.Params[name] != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		b.WriteString("|")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(k.Params[name])
	}
	return b.String()
}

// prefix returns the store prefix covering a resource's whole key family.
func prefix(resource Resource) string {
	return string(resource)
}
