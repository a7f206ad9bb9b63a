package symtab

import (
	"fmt"
	"strconv"

	"github.com/roach88/symtab/internal/interner"
)

// Codec converts domain values to and from their interned string form.
// Decode(Encode(v)) must reproduce v for every value the domain interns.
type Codec[T any] interface {
	Encode(v T) string
	Decode(s string) (T, error)
}

// CodecFuncs adapts a pair of functions to Codec.
type CodecFuncs[T any] struct {
	EncodeFunc func(T) string
	DecodeFunc func(string) (T, error)
}

// Encode implements Codec.
func (c CodecFuncs[T]) Encode(v T) string { return c.EncodeFunc(v) }

// Decode implements Codec.
func (c CodecFuncs[T]) Decode(s string) (T, error) { return c.DecodeFunc(s) }

// Domain is a named logical value space. Its name becomes the marker
// recorded in the store; its codec handles conversion.
//
// Domains are built with NewDomain, StringDomain or Int64Domain. A Domain
// is a small comparable handle: copies of one domain compare equal with ==.
// The zero Domain has no codec; interning through it panics, and lookups
// through it find nothing.
type Domain[T any] struct {
	spec *domainSpec[T]
}

type domainSpec[T any] struct {
	marker interner.Marker
	codec  Codec[T]
}

// NewDomain creates a domain with a caller-supplied codec.
// It panics if codec is nil.
func NewDomain[T any](name string, codec Codec[T]) Domain[T] {
	if codec == nil {
		panic(fmt.Sprintf("symtab: domain %q has nil codec", name))
	}
	return Domain[T]{spec: &domainSpec[T]{marker: interner.Marker(name), codec: codec}}
}

// StringDomain creates a domain for string-kinded types. Conversion is a
// plain type conversion and never fails.
func StringDomain[T ~string](name string) Domain[T] {
	return NewDomain[T](name, CodecFuncs[T]{
		EncodeFunc: func(v T) string { return string(v) },
		DecodeFunc: func(s string) (T, error) { return T(s), nil },
	})
}

// Int64Domain creates a domain for int64 values in base 10.
func Int64Domain(name string) Domain[int64] {
	return NewDomain[int64](name, CodecFuncs[int64]{
		EncodeFunc: func(v int64) string { return strconv.FormatInt(v, 10) },
		DecodeFunc: func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) },
	})
}

// IsZero reports whether d is the zero Domain.
func (d Domain[T]) IsZero() bool { return d.spec == nil }

// Name returns the domain name, or "" for the zero Domain.
func (d Domain[T]) Name() string { return string(d.Marker()) }

// Marker returns the marker recorded in the store for this domain.
func (d Domain[T]) Marker() interner.Marker {
	if d.spec == nil {
		return ""
	}
	return d.spec.marker
}

func (d Domain[T]) encode(v T) string {
	if d.spec == nil {
		panic(ErrZeroDomain)
	}
	return d.spec.codec.Encode(v)
}

func (d Domain[T]) decode(s string) (T, error) {
	if d.spec == nil {
		var zero T
		return zero, ErrZeroDomain
	}
	return d.spec.codec.Decode(s)
}
