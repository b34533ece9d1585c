package component

// Ref addresses an instance in an Arena. The zero Ref is never live.
type Ref struct {
	index uint32
	gen   uint32
}

// Valid reports whether r was ever issued by an Arena. A valid Ref may still
// be stale.
func (r Ref) Valid() bool {
	return r.gen != 0
}

type slot struct {
	gen  uint32
	inst Instance
}

// Arena stores instances in generation-counted slots. Releasing a slot bumps
// its generation so outstanding Refs stop resolving. Not safe for concurrent
// use.
type Arena struct {
	slots []slot
	free  []uint32
	live  int
}

// Insert stores inst and returns its Ref.
func (a *Arena) Insert(inst Instance) Ref {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[idx]
	s.gen++
	s.inst = inst
	a.live++
	return Ref{index: idx, gen: s.gen}
}

// Get returns the instance r points at, if r is still live.
func (a *Arena) Get(r Ref) (Instance, bool) {
	if !r.Valid() || int(r.index) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[r.index]
	if s.gen != r.gen || s.inst == nil {
		return nil, false
	}
	return s.inst, true
}

// Release frees the slot of r. It reports false when r was already stale.
func (a *Arena) Release(r Ref) bool {
	if _, ok := a.Get(r); !ok {
		return false
	}
	s := &a.slots[r.index]
	s.inst = nil
	s.gen++
	a.free = append(a.free, r.index)
	a.live--
	return true
}

// Len returns the number of live instances.
func (a *Arena) Len() int {
	return a.live
}
