package maze

// BoundedStack is a fixed-capacity, array-backed stack. Both the
// carving and the hint search walk the grid with one, sized rows*cols
// so neither can overflow against a well-formed grid. Overflow and
// underflow are reported explicitly rather than silently ignored.
type BoundedStack[T any] struct {
	items []T
	top   int
}

// NewBoundedStack creates a stack that holds at most capacity items.
func NewBoundedStack[T any](capacity int) *BoundedStack[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &BoundedStack[T]{
		items: make([]T, capacity),
		top:   -1,
	}
}

// Push places item on top of the stack. It reports false, leaving the
// stack unchanged, when the stack is already full.
func (s *BoundedStack[T]) Push(item T) bool {
	if s.top == len(s.items)-1 {
		return false
	}
	s.top++
	s.items[s.top] = item
	return true
}

// Pop removes and returns the top item. The second result is false
// when the stack is empty.
func (s *BoundedStack[T]) Pop() (T, bool) {
	var zero T
	if s.top == -1 {
		return zero, false
	}
	item := s.items[s.top]
	s.items[s.top] = zero
	s.top--
	return item, true
}

// Peek returns the top item without removing it. The second result is
// false when the stack is empty.
func (s *BoundedStack[T]) Peek() (T, bool) {
	var zero T
	if s.top == -1 {
		return zero, false
	}
	return s.items[s.top], true
}

// Len returns the number of items currently on the stack.
func (s *BoundedStack[T]) Len() int {
	return s.top + 1
}

// Cap returns the fixed capacity of the stack.
func (s *BoundedStack[T]) Cap() int {
	return len(s.items)
}

// IsEmpty reports whether the stack holds no items.
func (s *BoundedStack[T]) IsEmpty() bool {
	return s.top == -1
}

// IsFull reports whether the stack is at capacity.
func (s *BoundedStack[T]) IsFull() bool {
	return s.top == len(s.items)-1
}
