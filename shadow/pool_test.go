package shadow

import "testing"

func TestNodeSlicePoolReuse(t *testing.T) {
	s := acquireNodeSlice(0)
	if len(s) != 0 {
		t.Fatalf("acquired slice has len %d, want 0", len(s))
	}
	s = append(s, NewNode(1, "View"), NewNode(2, "View"))
	releaseNodeSlice(s)

	// A released slice comes back empty with its contents cleared.
	s2 := acquireNodeSlice(0)
	if len(s2) != 0 {
		t.Errorf("reacquired slice has len %d, want 0", len(s2))
	}
	for i := 0; i < cap(s2); i++ {
		if s2[:cap(s2)][i] != nil {
			t.Fatalf("reacquired slice retains node at index %d", i)
		}
	}
	releaseNodeSlice(s2)

	// Pop-by-shrinking leaves pointers beyond len; release must clear
	// the full backing array, not just len elements.
	s3 := acquireNodeSlice(0)
	s3 = append(s3, NewNode(3, "View"), NewNode(4, "View"))
	s3 = s3[:0]
	releaseNodeSlice(s3)
	s4 := acquireNodeSlice(0)
	for i := 0; i < cap(s4); i++ {
		if s4[:cap(s4)][i] != nil {
			t.Fatalf("released slice retained node beyond len at index %d", i)
		}
	}
	releaseNodeSlice(s4)

	if got := acquireNodeSlice(3); len(got) != 3 {
		t.Errorf("acquireNodeSlice(3) len = %d, want 3", len(got))
	}

	// Oversized slices are dropped rather than repooled; releasing one
	// must still be safe.
	releaseNodeSlice(make([]*Node, 2048))
	releaseNodeSlice(nil)
}
