package iter

import (
	"context"

	"gopkg.microglot.org/pegc/internal/grammar"
	"gopkg.microglot.org/pegc/internal/optional"
)

// NewSlice converts a slice of values into an Iterator implementation.
func NewSlice[T any](vs []T) grammar.Iterator[T] {
	return &iteratorSlice[T]{slice: vs, offset: -1}
}

type iteratorSlice[T any] struct {
	slice  []T
	offset int
}

func (it *iteratorSlice[T]) Next(ctx context.Context) optional.Optional[T] {
	it.offset = it.offset + 1
	if it.offset >= len(it.slice) {
		return optional.None[T]()
	}
	return optional.Some(it.slice[it.offset])
}

func (it *iteratorSlice[T]) Close(ctx context.Context) error {
	return nil
}

// Drain consumes the iterator to exhaustion and returns the values in
// order. The iterator is closed before returning.
func Drain[T any](ctx context.Context, it grammar.Iterator[T]) ([]T, error) {
	var vs []T
	for v := it.Next(ctx); v.IsPresent(); v = it.Next(ctx) {
		vs = append(vs, v.Value())
	}
	return vs, it.Close(ctx)
}
