package transform

import (
	"fmt"

	cryptoService "github.com/cube/simple/internal/crypto/service"
)

// Operation is a set of transform passes.
type Operation uint8

const (
	// HashOnWrite replaces Hashable fields with CredentialHasher.Hash.
	HashOnWrite Operation = 1 << iota
	// EncryptOnWrite replaces Encryptable fields with FieldCipher.Encrypt.
	EncryptOnWrite
	// DecryptOnRead replaces Encryptable fields with FieldCipher.Decrypt.
	DecryptOnRead
)

// Has reports whether op includes every pass in other.
func (op Operation) Has(other Operation) bool {
	return op&other == other
}

// Engine holds the primitives the passes delegate to. It has no mutable state.
type Engine struct {
	cipher cryptoService.FieldCipher
	hasher cryptoService.CredentialHasher
}

// NewEngine creates a transform engine.
func NewEngine(cipher cryptoService.FieldCipher, hasher cryptoService.CredentialHasher) *Engine {
	return &Engine{cipher: cipher, hasher: hasher}
}

// Result is the value returned by a read operation: Single or Many.
type Result[T any] interface {
	result()
}

// Single wraps one entity. A nil Value is skipped.
type Single[T any] struct {
	Value *T
}

// Many wraps a sequence of entities. Order and length are preserved; nil
// elements are skipped.
type Many[T any] struct {
	Values []*T
}

func (Single[T]) result() {}
func (Many[T]) result()   {}

// Apply runs exactly one pass (a single Operation bit) over target.
//
// The pass works on a copy and only stores it back once every field succeeded,
// so target is left untouched on error. A nil target is a no-op.
func Apply[T any](e *Engine, target *T, m Manifest[T], op Operation) error {
	if target == nil {
		return nil
	}

	var (
		marker Marker
		fn     func(string) (string, error)
	)
	switch op {
	case HashOnWrite:
		marker, fn = Hashable, e.hasher.Hash
	case EncryptOnWrite:
		marker, fn = Encryptable, e.cipher.Encrypt
	case DecryptOnRead:
		marker, fn = Encryptable, e.cipher.Decrypt
	default:
		return fmt.Errorf("transform: unsupported operation %d", op)
	}

	work := *target
	for _, f := range m.Fields(marker) {
		value, ok := f.Get(&work)
		if !ok {
			continue
		}
		out, err := fn(value)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", m.Entity, f.Name, err)
		}
		f.Set(&work, out)
	}
	*target = work
	return nil
}

// BeforeWrite applies the write passes in ops to every argument: the hash pass
// first, then the encrypt pass. DecryptOnRead in ops is ignored.
//
// Callers must invoke it exactly once per logical write; a second call encrypts
// (or hashes) the already transformed values again.
func BeforeWrite[T any](e *Engine, m Manifest[T], ops Operation, args ...*T) error {
	for _, arg := range args {
		if ops.Has(HashOnWrite) {
			if err := Apply(e, arg, m, HashOnWrite); err != nil {
				return err
			}
		}
		if ops.Has(EncryptOnWrite) {
			if err := Apply(e, arg, m, EncryptOnWrite); err != nil {
				return err
			}
		}
	}
	return nil
}

// AfterRead decrypts the Encryptable fields of a read result in place.
func AfterRead[T any](e *Engine, m Manifest[T], result Result[T]) error {
	switch r := result.(type) {
	case nil:
		return nil
	case Single[T]:
		return Apply(e, r.Value, m, DecryptOnRead)
	case Many[T]:
		for i, v := range r.Values {
			if err := Apply(e, v, m, DecryptOnRead); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("transform: unsupported result %T", result)
	}
}
