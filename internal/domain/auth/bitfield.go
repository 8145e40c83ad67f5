package auth

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownFlag is returned when a string input is neither a numeric value
// nor a name defined in the permission catalog. It always propagates; an
// unrecognized flag is never treated as zero.
var ErrUnknownFlag = errors.New("unknown permission flag")

// Bits is the raw packed representation of a permission set. Roles persist
// it as a plain integer column.
type Bits uint64

// Resolvable is anything that canonicalizes to raw permission bits: a raw
// Bits value, a catalog Flag name, an existing *Set, or a List of any of
// these. The resolver is closed over these four forms.
type Resolvable interface {
	resolveBits() (Bits, error)
}

func (b Bits) resolveBits() (Bits, error) { return b, nil }

// Flag is a permission identified by name. A numeric string resolves
// directly to its integer value without a catalog lookup.
type Flag string

func (f Flag) resolveBits() (Bits, error) {
	if n, err := strconv.ParseUint(string(f), 10, 64); err == nil {
		return Bits(n), nil
	}
	if bits, ok := catalog[string(f)]; ok {
		return bits, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, string(f))
}

// List resolves each element and ORs the results together.
type List []Resolvable

func (l List) resolveBits() (Bits, error) {
	var out Bits
	for _, item := range l {
		bits, err := Resolve(item)
		if err != nil {
			return 0, err
		}
		out |= bits
	}
	return out, nil
}

// Flags builds a List from permission names.
func Flags(names ...string) List {
	list := make(List, 0, len(names))
	for _, name := range names {
		list = append(list, Flag(name))
	}
	return list
}

// Resolve canonicalizes any Resolvable into raw bits. A nil input resolves
// to the empty set.
func Resolve(input Resolvable) (Bits, error) {
	if input == nil {
		return 0, nil
	}
	return input.resolveBits()
}

// Set wraps a permission bitfield. The zero value is the empty set and
// denies every check. A Set belongs to a single logical role record; do not
// share a mutable instance across roles or cache it across requests.
type Set struct {
	bits Bits
}

func NewSet(inputs ...Resolvable) (*Set, error) {
	set := &Set{}
	for _, input := range inputs {
		if err := set.Add(input); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// SetFromBits wraps an already-persisted permission integer.
func SetFromBits(bits Bits) *Set {
	return &Set{bits: bits}
}

func (s *Set) resolveBits() (Bits, error) { return s.bits, nil }

// Value returns the raw integer for persistence and interop.
func (s *Set) Value() Bits { return s.bits }

func (s *Set) Add(input Resolvable) error {
	bits, err := Resolve(input)
	if err != nil {
		return err
	}
	s.bits |= bits
	return nil
}

func (s *Set) Remove(input Resolvable) error {
	bits, err := Resolve(input)
	if err != nil {
		return err
	}
	s.bits &^= bits
	return nil
}

// Has reports whether every bit in input is set (subset semantics).
func (s *Set) Has(input Resolvable) (bool, error) {
	bits, err := Resolve(input)
	if err != nil {
		return false, err
	}
	return s.bits&bits == bits, nil
}

// Any reports whether at least one bit in input is set.
func (s *Set) Any(input Resolvable) (bool, error) {
	bits, err := Resolve(input)
	if err != nil {
		return false, err
	}
	return s.bits&bits != 0, nil
}

// Missing returns the catalog names present in input but absent from the
// set, in catalog definition order.
func (s *Set) Missing(input Resolvable) ([]string, error) {
	required, err := NewSet(input)
	if err != nil {
		return nil, err
	}
	if err := required.Remove(s); err != nil {
		return nil, err
	}
	return required.Names(), nil
}

// Names returns every catalog name whose bit is set, in catalog definition
// order regardless of the order bits were added.
func (s *Set) Names() []string {
	names := make([]string, 0)
	for _, name := range catalogOrder {
		if s.bits&catalog[name] == catalog[name] {
			names = append(names, name)
		}
	}
	return names
}

func (s *Set) Equals(input Resolvable) (bool, error) {
	bits, err := Resolve(input)
	if err != nil {
		return false, err
	}
	return s.bits == bits, nil
}
