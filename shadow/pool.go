package shadow

import "sync"

// Pooled scratch slices for tree walks. Layout passes, attach/detach
// bookkeeping, and affected-set accumulation all need short-lived []*Node
// buffers; recycling them keeps steady-state passes allocation-light even
// on large trees.
//
// Usage:
//   s := acquireNodeSlice(0)
//   ... append/use ...
//   releaseNodeSlice(s)

var nodeSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]*Node, 0, 16)
	},
}

// acquireNodeSlice gets a node slice from the pool with at least the
// given length. The caller must release it when done.
func acquireNodeSlice(n int) []*Node {
	slice := nodeSlicePool.Get().([]*Node)
	if cap(slice) < n {
		nodeSlicePool.Put(slice[:0])
		return make([]*Node, n, n*2)
	}
	return slice[:n]
}

// releaseNodeSlice returns a node slice to the pool. The slice must not
// be used after release.
func releaseNodeSlice(slice []*Node) {
	if slice == nil {
		return
	}
	// Clear the whole backing array: callers pop by shrinking len, so
	// pointers can survive past len(slice).
	slice = slice[:cap(slice)]
	for i := range slice {
		slice[i] = nil
	}
	if cap(slice) <= 1024 {
		nodeSlicePool.Put(slice[:0])
	}
}
