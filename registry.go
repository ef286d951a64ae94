// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wiimote

import (
	"errors"
	"sync"

	"github.com/kortschak/wiimote/internal/queue"
)

// A Registry holds discovered Transports awaiting an owner. Transports
// are handed out in discovery order. All methods are safe for concurrent
// use.
type Registry struct {
	mu sync.Mutex
	q  queue.FIFO[Transport]
}

// Add appends t to the back of the queue.
func (r *Registry) Add(t Transport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.q.Push(t)
}

// Next removes and returns the Transport at the front of the queue,
// transferring ownership to the caller. It returns false if the queue
// is empty; an empty queue is not an error.
func (r *Registry) Next() (Transport, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Pop()
}

// Len returns the number of Transports currently queued.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Len()
}

// Drain claims and closes every remaining Transport, returning the
// joined errors from the Close calls.
func (r *Registry) Drain() error {
	var errs []error
	for {
		t, ok := r.Next()
		if !ok {
			return errors.Join(errs...)
		}
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
}
