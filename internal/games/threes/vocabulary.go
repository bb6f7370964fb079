// Package threes implements a Threes-style tile merging puzzle.
//
// Tiles slide toward one edge of the grid and two neighbours merge when
// they are consecutive entries of the value vocabulary (1, 2, 3, 5, 8, ...),
// or when both are the smallest value. A new tile appears after every move
// that changes the grid. The game is won once the largest vocabulary value
// is on the grid and lost when no direction changes the grid anymore.
package threes

// Numbers is the full tile vocabulary. Each value from the third on is the
// sum of the two before it.
var Numbers = []int{1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377, 610, 987, 1597, 2584}

// MaxVocabularyLength is the longest vocabulary an engine can use.
var MaxVocabularyLength = len(Numbers)

// Vocabulary is the ordered set of values a tile may hold.
// It is immutable once created.
type Vocabulary struct {
	values []int
	index  map[int]int
}

// NewVocabulary returns the first length entries of Numbers.
// Length is clamped to [1, MaxVocabularyLength].
func NewVocabulary(length int) Vocabulary {
	if length > MaxVocabularyLength {
		length = MaxVocabularyLength
	}
	if length < 1 {
		length = 1
	}

	values := make([]int, length)
	copy(values, Numbers[:length])

	index := make(map[int]int, length)
	for i, v := range values {
		index[v] = i
	}
	return Vocabulary{values: values, index: index}
}

// Len returns the number of values.
func (v Vocabulary) Len() int {
	return len(v.values)
}

// Values returns a copy of the values in order.
func (v Vocabulary) Values() []int {
	out := make([]int, len(v.values))
	copy(out, v.values)
	return out
}

// First returns the smallest tile value.
func (v Vocabulary) First() int {
	return v.values[0]
}

// Second returns the second smallest tile value. A single-entry
// vocabulary has no second value, so First is returned instead.
func (v Vocabulary) Second() int {
	if len(v.values) < 2 {
		return v.values[0]
	}
	return v.values[1]
}

// Max returns the winning tile value.
func (v Vocabulary) Max() int {
	return v.values[len(v.values)-1]
}

// Index returns the position of value in the vocabulary.
func (v Vocabulary) Index(value int) (int, bool) {
	i, ok := v.index[value]
	return i, ok
}

// Contains reports whether value is a tile value.
func (v Vocabulary) Contains(value int) bool {
	_, ok := v.index[value]
	return ok
}

// mustIndex is Index for values already on the grid. A missing value
// means the grid was corrupted.
func (v Vocabulary) mustIndex(value int) int {
	i, ok := v.index[value]
	if !ok {
		panic(corruptedGrid(value))
	}
	return i
}

// Merge returns the value produced by combining a and b, if they merge.
// Two smallest values become the second value; values adjacent in the
// vocabulary become their sum. Zeros never merge.
func (v Vocabulary) Merge(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}

	ia, ib := v.mustIndex(a), v.mustIndex(b)

	switch {
	case ia == 0 && ib == 0:
		if len(v.values) < 2 {
			return 0, false
		}
		return v.values[1], true
	case ia-ib == 1 || ib-ia == 1:
		return a + b, true
	}
	return 0, false
}
