package pomcp

// pool is a bounded fixed-capacity object recycler: Get lazily allocates
// when the free list is empty, Put returns an object for reuse but drops
// it (letting the GC reclaim it) once the free list is at capacity. This
// bounds allocation pressure during search without letting the recycler
// itself grow unbounded, which is why a plain sync.Pool doesn't fit —
// sync.Pool never exposes or caps how many objects it is holding.
type pool[T any] struct {
	free     []*T
	capacity int
	newFn    func() *T
}

func newPool[T any](capacity int, newFn func() *T) *pool[T] {
	return &pool[T]{
		capacity: capacity,
		newFn:    newFn,
	}
}

// Get returns a recycled object, or a freshly allocated one if the free
// list is empty.
func (p *pool[T]) Get() *T {
	n := len(p.free)
	if n == 0 {
		return p.newFn()
	}
	item := p.free[n-1]
	p.free = p.free[:n-1]
	return item
}

// Put returns obj to the free list, unless it's already at capacity.
func (p *pool[T]) Put(obj *T) {
	if len(p.free) < p.capacity {
		p.free = append(p.free, obj)
	}
}

// Drain empties the free list, for use on engine teardown.
func (p *pool[T]) Drain() {
	p.free = nil
}

// Len reports how many recycled objects are currently held.
func (p *pool[T]) Len() int {
	return len(p.free)
}

// NodePool is the VNode recycler: lazily allocated, bounded by capacity,
// drained on engine teardown. QNodes live inside a VNode's own Qs array
// (one fixed-size array per VNode, sized to the domain's action count) and
// are recycled for free whenever the array's backing storage is reused by
// VNode.initialize — they never need a standalone free list of their own.
type NodePool struct {
	vnodes *pool[VNode]
}

// DefaultPoolCapacity is the default fixed capacity of a NodePool's free
// list.
const DefaultPoolCapacity = 1 << 16

// NewNodePool returns a NodePool with the given capacity.
func NewNodePool(capacity int) *NodePool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	return &NodePool{
		vnodes: newPool(capacity, func() *VNode { return &VNode{} }),
	}
}

// Drain empties the free list.
func (p *NodePool) Drain() {
	p.vnodes.Drain()
}
