package xyedge

import (
	"strconv"
	"testing"
)

func TestList(t *testing.T) {
	var empty List[int]
	if !empty.IsEmpty() || empty.Len() != 0 {
		t.Fatal("zero list isn't empty")
	}
	if _, ok := empty.Head(); ok {
		t.Error("empty list has a head")
	}
	diff(t, 0, empty.Tail().Len())

	l := ListOf(1, 2, 3)
	diff(t, []int{1, 2, 3}, l.Slice())
	diff(t, 3, l.Len())
	if h, ok := l.Head(); !ok || h != 1 {
		t.Errorf("got head %d, %t", h, ok)
	}
	diff(t, []int{2, 3}, l.Tail().Slice())
	diff(t, []int{0, 1, 2, 3}, l.Prepend(0).Slice())
	diff(t, []int{1, 2, 3, 4}, l.Append(4).Slice())
	diff(t, []int{3, 2, 1}, l.Reverse().Slice())
	diff(t, []int{1, 2, 3, 1, 2, 3}, l.Concat(l).Slice())

	// Lists are persistent.
	diff(t, []int{1, 2, 3}, l.Slice())
}

func TestListFunctions(t *testing.T) {
	l := ListOf(1, 2, 3, 4)
	diff(t, 10, Fold(l, 0, func(acc, v int) int { return acc + v }))
	diff(t, []string{"1", "2", "3", "4"}, Map(l, strconv.Itoa).Slice())
	diff(t, []int{1, 1, 2, 2, 3, 3, 4, 4}, FlatMap(l, func(v int) List[int] { return ListOf(v, v) }).Slice())
	diff(t, []int{}, FlatMap(l, func(int) List[int] { return List[int]{} }).Slice())
}

func TestMkString(t *testing.T) {
	l := ListOf("a", "b", "c")
	diff(t, "<a|b|c>", MkString(l, "<", "|", ">"))
	diff(t, "abc", MkString(l, "", "", ""))
	diff(t, "()", MkString(List[string]{}, "(", ",", ")"))
	diff(t, "[1, 2]", ListOf(1, 2).String())
}
