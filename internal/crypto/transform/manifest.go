// Package transform applies field-level hashing and encryption to domain entities
// at data boundaries.
//
// Each entity type declares an explicit Manifest listing its sensitive fields
// together with accessor and mutator functions. The engine walks that manifest;
// it never inspects entity internals at runtime.
//
// Typical use in a use case:
//
//	// before persisting
//	if err := transform.BeforeWrite(engine, domain.MemberManifest, transform.HashOnWrite|transform.EncryptOnWrite, member); err != nil {
//	    return err
//	}
//
//	// after loading
//	if err := transform.AfterRead(engine, domain.MemberManifest, transform.Many[domain.Member]{Values: members}); err != nil {
//	    return err
//	}
package transform

import "fmt"

// Marker classifies a sensitive field.
type Marker int

const (
	// Hashable fields are replaced with a one-way credential digest on write.
	Hashable Marker = iota + 1
	// Encryptable fields are encrypted on write and decrypted on read.
	Encryptable
)

func (m Marker) String() string {
	switch m {
	case Hashable:
		return "hashable"
	case Encryptable:
		return "encryptable"
	default:
		return fmt.Sprintf("marker(%d)", int(m))
	}
}

// Field describes one sensitive string field of T.
//
// Get returns the current value and whether it is present; absent (null) values
// are skipped by every pass. Set stores the transformed value.
type Field[T any] struct {
	Name   string
	Marker Marker
	Get    func(*T) (string, bool)
	Set    func(*T, string)
}

// Manifest is the ordered list of sensitive fields for an entity type.
type Manifest[T any] struct {
	Entity string
	fields []Field[T]
}

// NewManifest builds a manifest. It panics on a field without accessors, which
// is a programming error caught at package initialization.
func NewManifest[T any](entity string, fields ...Field[T]) Manifest[T] {
	for _, f := range fields {
		if f.Get == nil || f.Set == nil {
			panic(fmt.Sprintf("transform: field %s.%s has no accessor", entity, f.Name))
		}
	}
	return Manifest[T]{
		Entity: entity,
		fields: append([]Field[T](nil), fields...),
	}
}

// Fields returns the fields carrying marker, in declaration order.
func (m Manifest[T]) Fields(marker Marker) []Field[T] {
	var out []Field[T]
	for _, f := range m.fields {
		if f.Marker == marker {
			out = append(out, f)
		}
	}
	return out
}

// HashableField declares a plain string field as Hashable.
func HashableField[T any](name string, ref func(*T) *string) Field[T] {
	return stringField(name, Hashable, ref)
}

// EncryptableField declares a plain string field as Encryptable.
func EncryptableField[T any](name string, ref func(*T) *string) Field[T] {
	return stringField(name, Encryptable, ref)
}

// NullableEncryptableField declares an optional string field as Encryptable.
// A nil pointer is treated as absent.
func NullableEncryptableField[T any](name string, ref func(*T) **string) Field[T] {
	return Field[T]{
		Name:   name,
		Marker: Encryptable,
		Get: func(t *T) (string, bool) {
			p := *ref(t)
			if p == nil {
				return "", false
			}
			return *p, true
		},
		Set: func(t *T, v string) {
			*ref(t) = &v
		},
	}
}

func stringField[T any](name string, marker Marker, ref func(*T) *string) Field[T] {
	return Field[T]{
		Name:   name,
		Marker: marker,
		Get: func(t *T) (string, bool) {
			return *ref(t), true
		},
		Set: func(t *T, v string) {
			*ref(t) = v
		},
	}
}
