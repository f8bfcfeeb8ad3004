package pipeline

import (
	"cmp"
	"context"
	"strings"

	"github.com/webcraft-project/async-core/asyncerrors"
	"github.com/webcraft-project/async-core/stream"
)

// Numeric constrains the element types Sum accepts.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Reduce folds src into a single value using fn, taking the first item as
// the initial accumulator. An empty src is an asyncerrors.StateError, the
// same empty-reduction failure the original adaptor's reducer_collector
// reports.
func Reduce[T any](ctx context.Context, src stream.Readable[T], fn func(acc, next T) T) (T, error) {
	var zero T

	acc, ok, err := src.Recv(ctx)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, &asyncerrors.StateError{Msg: "reduce over empty stream"}
	}

	for {
		v, ok, err := src.Recv(ctx)
		if err != nil {
			return zero, err
		}
		if !ok {
			return acc, nil
		}
		acc = fn(acc, v)
	}
}

// ToSlice drains src into a slice, possibly empty.
func ToSlice[T any](ctx context.Context, src stream.Readable[T]) ([]T, error) {
	return stream.ToSlice(ctx, src)
}

// Joining concatenates every string in src with sep between them, wrapping
// the whole result in prefix/suffix. An empty src yields prefix+suffix with
// no separators, matching the original adaptor's joining_collector.
func Joining(ctx context.Context, src stream.Readable[string], sep, prefix, suffix string) (string, error) {
	values, err := stream.ToSlice(ctx, src)
	if err != nil {
		return "", err
	}

	return prefix + strings.Join(values, sep) + suffix, nil
}

// GroupBy partitions src's items into a map keyed by keyFn, preserving
// encounter order within each group.
func GroupBy[T any, K comparable](
	ctx context.Context, src stream.Readable[T], keyFn func(T) K,
) (map[K][]T, error) {
	groups := make(map[K][]T)

	for {
		v, ok, err := src.Recv(ctx)
		if err != nil {
			return groups, err
		}
		if !ok {
			return groups, nil
		}

		k := keyFn(v)
		groups[k] = append(groups[k], v)
	}
}

// Min returns the smallest item in src. An empty src is an
// asyncerrors.StateError.
func Min[T cmp.Ordered](ctx context.Context, src stream.Readable[T]) (T, error) {
	return Reduce(ctx, src, func(acc, next T) T {
		if next < acc {
			return next
		}
		return acc
	})
}

// Max returns the largest item in src. An empty src is an
// asyncerrors.StateError.
func Max[T cmp.Ordered](ctx context.Context, src stream.Readable[T]) (T, error) {
	return Reduce(ctx, src, func(acc, next T) T {
		if next > acc {
			return next
		}
		return acc
	})
}

// Sum adds every item in src. An empty src is an asyncerrors.StateError,
// since Sum is built on Reduce, the same empty-reduction failure Min and Max
// report.
func Sum[T Numeric](ctx context.Context, src stream.Readable[T]) (T, error) {
	return Reduce(ctx, src, func(acc, next T) T { return acc + next })
}

// FindFirst returns the first item for which pred is true. found is false
// if no such item exists.
func FindFirst[T any](ctx context.Context, src stream.Readable[T], pred func(T) bool) (value T, found bool, err error) {
	for {
		v, ok, err := src.Recv(ctx)
		if err != nil {
			return value, false, err
		}
		if !ok {
			return value, false, nil
		}
		if pred(v) {
			return v, true, nil
		}
	}
}

// FindLast returns the last item for which pred is true, draining src fully
// to find it. found is false if no such item exists.
func FindLast[T any](ctx context.Context, src stream.Readable[T], pred func(T) bool) (value T, found bool, err error) {
	for {
		v, ok, err := src.Recv(ctx)
		if err != nil {
			return value, found, err
		}
		if !ok {
			return value, found, nil
		}
		if pred(v) {
			value, found = v, true
		}
	}
}

// AnyMatch reports whether any item in src satisfies pred, short-circuiting
// on the first match.
func AnyMatch[T any](ctx context.Context, src stream.Readable[T], pred func(T) bool) (bool, error) {
	_, found, err := FindFirst(ctx, src, pred)
	return found, err
}

// AllMatch reports whether every item in src satisfies pred, short-circuiting
// on the first mismatch. An empty src reports true.
func AllMatch[T any](ctx context.Context, src stream.Readable[T], pred func(T) bool) (bool, error) {
	for {
		v, ok, err := src.Recv(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		if !pred(v) {
			return false, nil
		}
	}
}

// NoneMatch reports whether no item in src satisfies pred.
func NoneMatch[T any](ctx context.Context, src stream.Readable[T], pred func(T) bool) (bool, error) {
	any, err := AnyMatch(ctx, src, pred)
	return !any, err
}
