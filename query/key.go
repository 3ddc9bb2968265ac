package query

import (
	"fmt"
	"math"
	"strconv"
)

// Start and End are the sentinel index magnitudes: the most negative and
// most positive representable indices. They let unbounded slice ends be
// written without special cases; clamping during slice resolution maps
// them onto concrete bounds.
const (
	Start int64 = math.MinInt64
	End   int64 = math.MaxInt64
)

type KeyKind int

const (
	IndexKind KeyKind = iota
	SliceKind
	FieldKind
)

// Key addresses one location (or, for slices, a sub-range) inside a
// container node.
type Key struct {
	Kind  KeyKind
	Index int64
	Slice Slice
	Field string
}

type Slice struct {
	Start, Stop, Step int64
}

func IndexKey(i int64) Key {
	return Key{Kind: IndexKind, Index: i}
}

func FieldKey(f string) Key {
	return Key{Kind: FieldKind, Field: f}
}

func SliceKey(start, stop, step int64) Key {
	return Key{Kind: SliceKind, Slice: Slice{Start: start, Stop: stop, Step: step}}
}

// FullSlice addresses the whole range of a sequence.
func FullSlice() Key {
	return SliceKey(Start, End, 1)
}

func (k Key) String() string {
	switch k.Kind {
	case IndexKind:
		return "[" + indexString(k.Index) + "]"
	case SliceKind:
		s := k.Slice
		res := "[" + indexString(s.Start) + ":" + indexString(s.Stop)
		if s.Step != 1 {
			res += ":" + strconv.FormatInt(s.Step, 10)
		}
		return res + "]"
	case FieldKind:
		return "." + EscapeProperty(k.Field)
	}
	return fmt.Sprintf("<key kind %d>", k.Kind)
}

func indexString(i int64) string {
	switch i {
	case Start:
		return "start"
	case End:
		return "end"
	}
	return strconv.FormatInt(i, 10)
}

// normIndex clamps a slice endpoint to [lo, hi] for a sequence of
// length n. Sentinels map onto the bounds; negative indices count from
// the end.
func normIndex(v, lo, hi, n int64) int64 {
	switch v {
	case Start:
		return lo
	case End:
		return hi
	}
	if v < 0 {
		v += n
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// bounds resolves the slice's endpoints for forward iteration over a
// sequence of length n, clamped so 0 <= start <= stop <= n. An empty
// selection keeps its position: the returned pair is its insertion
// point.
func (s Slice) bounds(n int) (int, int) {
	start := normIndex(s.Start, 0, int64(n), int64(n))
	stop := normIndex(s.Stop, 0, int64(n), int64(n))
	if stop < start {
		stop = start
	}
	return int(start), int(stop)
}

// indices resolves a slice against a sequence of length n, producing the
// concrete index list in step order.
func (s Slice) indices(n int) []int {
	if s.Step == 0 {
		return nil
	}
	var res []int
	if s.Step > 0 {
		start, stop := s.bounds(n)
		for i := start; i < stop; i += int(s.Step) {
			res = append(res, i)
		}
		return res
	}
	start := normIndex(s.Start, -1, int64(n)-1, int64(n))
	stop := normIndex(s.Stop, -1, int64(n)-1, int64(n))
	for i := start; i > stop; i += s.Step {
		res = append(res, int(i))
	}
	return res
}
