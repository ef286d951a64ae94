// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package queue

import (
	"reflect"
	"testing"
)

var fifoTests = []struct {
	name string
	ops  func() any
	want any
}{
	{
		name: "empty_pop",
		ops: func() any {
			var q FIFO[int]
			_, ok := q.Pop()
			return []any{q.Len(), ok}
		},
		want: []any{0, false},
	},
	{
		name: "push_3_order",
		ops: func() any {
			var q FIFO[int]
			q.Push(1)
			q.Push(2)
			q.Push(3)
			var got []int
			for {
				v, ok := q.Pop()
				if !ok {
					break
				}
				got = append(got, v)
			}
			return got
		},
		want: []int{1, 2, 3},
	},
	{
		name: "interleaved",
		ops: func() any {
			var q FIFO[string]
			q.Push("a")
			q.Push("b")
			v1, _ := q.Pop()
			q.Push("c")
			v2, _ := q.Pop()
			v3, _ := q.Pop()
			_, ok := q.Pop()
			return []any{v1, v2, v3, ok, q.Len()}
		},
		want: []any{"a", "b", "c", false, 0},
	},
	{
		name: "reuse_after_drain",
		ops: func() any {
			var q FIFO[int]
			for i := 0; i < 4; i++ {
				q.Push(i)
			}
			for q.Len() != 0 {
				q.Pop()
			}
			q.Push(9)
			v, ok := q.Pop()
			return []any{v, ok}
		},
		want: []any{9, true},
	},
	{
		name: "len_tracks_head",
		ops: func() any {
			var q FIFO[int]
			q.Push(1)
			q.Push(2)
			q.Pop()
			return q.Len()
		},
		want: 1,
	},
}

func TestFIFO(t *testing.T) {
	for _, test := range fifoTests {
		t.Run(test.name, func(t *testing.T) {
			got := test.ops()
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("expected result:\ngot: %#v\nwant:%#v", got, test.want)
			}
		})
	}
}
