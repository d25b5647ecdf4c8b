package util

import (
	"iter"
	"math"
)

// Handle identifies an element of a List. It stays valid until the element is
// removed; after that, it never aliases another element, even one occupying
// the same slot. The zero Handle is never valid.
type Handle struct {
	ix  int32
	gen uint32
}

const nilIx int32 = -1

type listSlot[T any] struct {
	v    T
	gen  uint32
	prev int32
	next int32
	live bool
}

// List is an insertion-ordered collection backed by a slot arena. Slots are
// linked in both directions by index, so appends and removals are O(1) and
// freed slots are recycled through a free list.
//
// A List is not safe for concurrent use.
type List[T any] struct {
	slots []listSlot[T]
	free  []int32
	head  int32
	tail  int32
	n     int
}

func NewList[T any]() *List[T] {
	return &List[T]{
		head: nilIx,
		tail: nilIx,
	}
}

// Add appends v at the tail of the list.
func (l *List[T]) Add(v T) Handle {
	var ix int32
	if n := len(l.free); n > 0 {
		ix = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		if len(l.slots) == math.MaxInt32 {
			panic("util: list is full")
		}
		l.slots = append(l.slots, listSlot[T]{})
		ix = int32(len(l.slots) - 1)
	}

	s := &l.slots[ix]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.v = v
	s.live = true
	s.prev = l.tail
	s.next = nilIx

	if l.tail == nilIx {
		l.head = ix
	} else {
		l.slots[l.tail].next = ix
	}
	l.tail = ix
	l.n++

	return Handle{ix: ix, gen: s.gen}
}

// Remove detaches the element identified by h. It returns false if h does
// not identify a live element of this list.
func (l *List[T]) Remove(h Handle) bool {
	s := l.slot(h)
	if s == nil {
		return false
	}

	if s.prev == nilIx {
		l.head = s.next
	} else {
		l.slots[s.prev].next = s.next
	}

	if s.next == nilIx {
		l.tail = s.prev
	} else {
		l.slots[s.next].prev = s.prev
	}

	var zero T
	s.v = zero
	s.live = false
	s.prev = nilIx
	s.next = nilIx

	l.free = append(l.free, h.ix)
	l.n--

	return true
}

func (l *List[T]) Get(h Handle) (v T, ok bool) {
	if s := l.slot(h); s != nil {
		return s.v, true
	}
	return v, false
}

func (l *List[T]) Len() int {
	return l.n
}

// Snapshot appends the handles of all live elements to dst, in insertion
// order, and returns the extended slice.
//
// Iterating over a snapshot and checking each handle with Get before use is
// the way to traverse the list while the list is being modified.
func (l *List[T]) Snapshot(dst []Handle) []Handle {
	for ix := l.head; ix != nilIx; ix = l.slots[ix].next {
		dst = append(dst, Handle{ix: ix, gen: l.slots[ix].gen})
	}
	return dst
}

// All iterates over the list in insertion order. The list must not be
// modified during the iteration, use Snapshot for that.
func (l *List[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for ix := l.head; ix != nilIx; ix = l.slots[ix].next {
			s := &l.slots[ix]
			if !yield(Handle{ix: ix, gen: s.gen}, s.v) {
				return
			}
		}
	}
}

func (l *List[T]) slot(h Handle) *listSlot[T] {
	if h.gen == 0 || h.ix < 0 || int(h.ix) >= len(l.slots) {
		return nil
	}
	s := &l.slots[h.ix]
	if !s.live || s.gen != h.gen {
		return nil
	}
	return s
}
