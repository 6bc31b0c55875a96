package xyedge

import (
	"fmt"
	"iter"
	"strings"
)

// List is an immutable singly linked list. The zero value is the empty list.
//
// Prepending is O(1) and shares the existing list. Operations that need to
// modify the tail, such as [List.Append], copy the nodes in front of it.
type List[T any] struct {
	head *listNode[T]
}

type listNode[T any] struct {
	value T
	next  *listNode[T]
	n     int
}

// ListOf returns a list holding values in order.
func ListOf[T any](values ...T) List[T] {
	var l List[T]
	for i := len(values) - 1; i >= 0; i-- {
		l = l.Prepend(values[i])
	}
	return l
}

// Prepend returns a list with v in front of l.
func (l List[T]) Prepend(v T) List[T] {
	return List[T]{head: &listNode[T]{value: v, next: l.head, n: l.Len() + 1}}
}

// Append returns a list with v after the last element of l.
func (l List[T]) Append(v T) List[T] {
	return l.Concat(ListOf(v))
}

// Concat returns the elements of l followed by those of o. The nodes of o are
// shared.
func (l List[T]) Concat(o List[T]) List[T] {
	if l.IsEmpty() {
		return o
	}
	return Fold(l.Reverse(), o, func(acc List[T], v T) List[T] {
		return acc.Prepend(v)
	})
}

// Head returns the first element, if any.
func (l List[T]) Head() (T, bool) {
	if l.head == nil {
		var zero T
		return zero, false
	}
	return l.head.value, true
}

// Tail returns the list without its first element. The tail of the empty list
// is the empty list.
func (l List[T]) Tail() List[T] {
	if l.head == nil {
		return l
	}
	return List[T]{head: l.head.next}
}

func (l List[T]) Len() int {
	if l.head == nil {
		return 0
	}
	return l.head.n
}

func (l List[T]) IsEmpty() bool { return l.head == nil }

// Reverse returns the elements of l in reverse order.
func (l List[T]) Reverse() List[T] {
	return Fold(l, List[T]{}, func(acc List[T], v T) List[T] {
		return acc.Prepend(v)
	})
}

// All returns an iterator over the elements of l, front to back.
func (l List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Slice returns the elements of l in a newly allocated slice.
func (l List[T]) Slice() []T {
	out := make([]T, 0, l.Len())
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

func (l List[T]) String() string {
	return MkString(l, "[", ", ", "]")
}

// Fold reduces l from front to back.
func Fold[T, A any](l List[T], init A, fn func(A, T) A) A {
	acc := init
	for v := range l.All() {
		acc = fn(acc, v)
	}
	return acc
}

// Map returns a list of fn applied to every element of l, in order.
func Map[T, U any](l List[T], fn func(T) U) List[U] {
	return Fold(l, List[U]{}, func(acc List[U], v T) List[U] {
		return acc.Prepend(fn(v))
	}).Reverse()
}

// FlatMap returns the concatenation of fn applied to every element of l.
func FlatMap[T, U any](l List[T], fn func(T) List[U]) List[U] {
	return Fold(l.Reverse(), List[U]{}, func(acc List[U], v T) List[U] {
		return fn(v).Concat(acc)
	})
}

// MkString formats the elements of l with %v, joined by sep and surrounded by
// prefix and suffix.
func MkString[T any](l List[T], prefix, sep, suffix string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	first := true
	for v := range l.All() {
		if !first {
			sb.WriteString(sep)
		}
		first = false
		fmt.Fprintf(&sb, "%v", v)
	}
	sb.WriteString(suffix)
	return sb.String()
}
