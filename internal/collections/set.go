package collections

import (
	"fmt"
	"iter"
	"slices"
)

// OrderedSet is a set that remembers the order values were first added in
type OrderedSet[T comparable] struct {
	index  map[T]int
	values []T
}

// NewOrderedSet creates a new OrderedSet with the given initial values
func NewOrderedSet[T comparable](vs ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{index: make(map[T]int, len(vs))}
	s.Add(vs...)
	return s
}

// Add appends values not yet in the set and reports how many were new
func (s *OrderedSet[T]) Add(vs ...T) int {
	added := 0
	for _, v := range vs {
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = len(s.values)
		s.values = append(s.values, v)
		added++
	}
	return added
}

// Has checks if the set contains the given value
func (s *OrderedSet[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Remove deletes v, keeping the order of the remaining values
func (s *OrderedSet[T]) Remove(v T) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	delete(s.index, v)
	s.values = slices.Delete(s.values, i, i+1)
	for j := i; j < len(s.values); j++ {
		s.index[s.values[j]] = j
	}
	return true
}

// Len returns the number of values in the set
func (s *OrderedSet[T]) Len() int {
	return len(s.values)
}

// Members returns a copy of the values in insertion order
func (s *OrderedSet[T]) Members() []T {
	return slices.Clone(s.values)
}

// All iterates over the values in insertion order
func (s *OrderedSet[T]) All() iter.Seq[T] {
	return slices.Values(s.values)
}

// String returns a string representation of the set
func (s *OrderedSet[T]) String() string {
	return fmt.Sprintf("%v", s.values)
}
