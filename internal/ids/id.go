// Package ids provides the namespaced identifier type shared by every
// registry-backed entity (items, actions, drop tables, shop entries,
// mastery bonuses, slayer areas, crops).
package ids

import (
	"fmt"
	"strings"
)

// Id is a (namespace, local) pair. The pair is the identity: two Ids are
// equal iff both fields match, independent of how they were constructed.
type Id struct {
	Namespace string
	Local     string
}

// New builds an Id directly from its parts.
func New(namespace, local string) Id {
	return Id{Namespace: namespace, Local: local}
}

// Parse builds an Id from a fully-qualified "ns:local" literal.
func Parse(literal string) (Id, error) {
	ns, local, ok := strings.Cut(literal, ":")
	if !ok || ns == "" || local == "" {
		return Id{}, fmt.Errorf("ids: %q is not a valid \"ns:local\" identifier", literal)
	}
	return Id{Namespace: ns, Local: local}, nil
}

// MustParse is Parse but panics on malformed input — for use with
// compile-time-known literals (registry bootstrap, tests).
func MustParse(literal string) Id {
	id, err := Parse(literal)
	if err != nil {
		panic(err)
	}
	return id
}

// NameResolver looks up an Id from a case-insensitive display name. It is
// satisfied by registry.Bundle so this package never imports registry.
type NameResolver interface {
	ResolveName(name string) (Id, bool)
}

// FromName resolves a display name through r, matching case-insensitively.
func FromName(r NameResolver, name string) (Id, error) {
	if id, ok := r.ResolveName(strings.ToLower(strings.TrimSpace(name))); ok {
		return id, nil
	}
	return Id{}, fmt.Errorf("ids: no entry named %q", name)
}

// String renders the canonical "ns:local" form.
func (id Id) String() string {
	return id.Namespace + ":" + id.Local
}

// IsZero reports whether id is the zero value (no namespace and no local).
func (id Id) IsZero() bool {
	return id.Namespace == "" && id.Local == ""
}

// MarshalText implements encoding.TextMarshaler so Id serializes as the
// "ns:local" string form per spec.md §6 ("numeric IDs stored as
// ns:local strings").
func (id Id) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Id) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
