// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package queue implements a simple growable FIFO queue.
package queue

// A FIFO is a first-in first-out queue of T. The zero value is an empty
// queue ready for use.
type FIFO[T any] struct {
	data []T
	head int
}

func (q *FIFO[T]) Len() int {
	return len(q.data) - q.head
}

func (q *FIFO[T]) Push(v T) {
	q.data = append(q.data, v)
}

func (q *FIFO[T]) Pop() (T, bool) {
	if q.head == len(q.data) {
		var zero T
		return zero, false
	}
	v := q.data[q.head]
	var zero T
	q.data[q.head] = zero
	q.head++
	if q.head == len(q.data) {
		q.data = q.data[:0]
		q.head = 0
	}
	return v, true
}
