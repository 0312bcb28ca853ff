package vtable

// heightTree is a Fenwick (binary indexed) tree over row heights.
// It answers "sum of heights of rows [0, i)" and "which row contains
// pixel p" in O(log n), and absorbs single-row height changes in O(log n).
//
// tree is 1-based internally; heights mirrors the stored value per row so
// a changed height can be applied as a delta.
type heightTree struct {
	tree    []int
	heights []int
	total   int
	topBit  int // highest power of two <= len(heights)
}

// newHeightTree builds a tree from height(i) for i in [0, n) in O(n).
func newHeightTree(n int, height func(int) int) *heightTree {
	t := &heightTree{
		tree:    make([]int, n+1),
		heights: make([]int, n),
	}
	for i := 0; i < n; i++ {
		h := height(i)
		t.heights[i] = h
		t.total += h
		t.tree[i+1] += h
		if j := (i + 1) + ((i + 1) & -(i + 1)); j <= n {
			t.tree[j] += t.tree[i+1]
		}
	}
	t.topBit = 1
	for t.topBit<<1 <= n {
		t.topBit <<= 1
	}
	return t
}

// Len returns the number of rows in the tree.
func (t *heightTree) Len() int { return len(t.heights) }

// Total returns the sum of all heights.
func (t *heightTree) Total() int { return t.total }

// Get returns the stored height of row i.
func (t *heightTree) Get(i int) int { return t.heights[i] }

// Set stores a new height for row i and returns the change applied.
func (t *heightTree) Set(i, h int) int {
	delta := h - t.heights[i]
	if delta == 0 {
		return 0
	}
	t.heights[i] = h
	t.total += delta
	for j := i + 1; j < len(t.tree); j += j & -j {
		t.tree[j] += delta
	}
	return delta
}

// SumUntil returns the sum of heights of rows [0, i).
func (t *heightTree) SumUntil(i int) int {
	if i > len(t.heights) {
		i = len(t.heights)
	}
	sum := 0
	for j := i; j > 0; j -= j & -j {
		sum += t.tree[j]
	}
	return sum
}

// RowAt returns the largest row index i with SumUntil(i) <= pos, i.e.
// the row whose pixel range contains pos. Returns Len() when pos is at or
// past the total height and 0 for negative positions.
func (t *heightTree) RowAt(pos int) int {
	if pos < 0 || len(t.heights) == 0 {
		return 0
	}
	idx := 0
	rem := pos
	for bit := t.topBit; bit > 0; bit >>= 1 {
		next := idx + bit
		if next < len(t.tree) && t.tree[next] <= rem {
			idx = next
			rem -= t.tree[next]
		}
	}
	return idx
}
