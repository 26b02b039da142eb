package store

import "sync"

// Buffer is a thread-safe growable FIFO queue. It doubles its capacity when
// full, so producers never block; consumers poll with TryReceive or DrainTo.
type Buffer[T any] struct {
	mu       sync.Mutex
	buf      []T
	head     int
	tail     int
	count    int
	capacity int
	closed   bool

	received int64
	sent     int64
	resizes  int
}

// NewBuffer creates a Buffer with the given initial capacity.
func NewBuffer[T any](initialCapacity int) *Buffer[T] {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	return &Buffer[T]{
		buf:      make([]T, initialCapacity),
		capacity: initialCapacity,
	}
}

// Send enqueues an item, growing the buffer when full. Returns false if the
// buffer is closed.
func (b *Buffer[T]) Send(item T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return false
	}

	if b.count == b.capacity {
		b.grow()
	}

	b.buf[b.tail] = item
	b.tail = (b.tail + 1) % b.capacity
	b.count++
	b.received++
	return true
}

// TryReceive dequeues one item without blocking. The second return is false
// when the buffer is empty.
func (b *Buffer[T]) TryReceive() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var zero T
	if b.count == 0 {
		return zero, false
	}

	item := b.buf[b.head]
	b.buf[b.head] = zero
	b.head = (b.head + 1) % b.capacity
	b.count--
	b.sent++
	return item, true
}

// DrainTo dequeues up to max items (all items when max <= 0). Returns nil
// when the buffer is empty.
func (b *Buffer[T]) DrainTo(max int) []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		return nil
	}

	n := b.count
	if max > 0 && max < n {
		n = max
	}

	var zero T
	items := make([]T, n)
	for i := 0; i < n; i++ {
		items[i] = b.buf[b.head]
		b.buf[b.head] = zero
		b.head = (b.head + 1) % b.capacity
		b.count--
		b.sent++
	}
	return items
}

// Close marks the buffer closed. Subsequent Sends are rejected; queued items
// remain drainable.
func (b *Buffer[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// Len returns the number of queued items.
func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Cap returns the current capacity.
func (b *Buffer[T]) Cap() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity
}

// BufferStats describes buffer throughput.
type BufferStats struct {
	Count    int
	Capacity int
	Received int64
	Sent     int64
	Resizes  int
}

// Stats returns a snapshot of buffer statistics.
func (b *Buffer[T]) Stats() BufferStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BufferStats{
		Count:    b.count,
		Capacity: b.capacity,
		Received: b.received,
		Sent:     b.sent,
		Resizes:  b.resizes,
	}
}

// grow doubles capacity. Must be called with the lock held.
func (b *Buffer[T]) grow() {
	newBuf := make([]T, b.capacity*2)
	if b.count > 0 {
		if b.head < b.tail {
			copy(newBuf, b.buf[b.head:b.tail])
		} else {
			n := copy(newBuf, b.buf[b.head:])
			copy(newBuf[n:], b.buf[:b.tail])
		}
	}
	b.buf = newBuf
	b.head = 0
	b.tail = b.count
	b.capacity = len(newBuf)
	b.resizes++
}
