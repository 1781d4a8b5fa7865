// pkg/pool/ref.go
package pool

// Ref is a weak reference to a pool slot. It carries no ownership and must be
// resolved against its pool before every use.
type Ref struct {
	Index      int
	Generation uint32
}

// NoRef is the empty reference
var NoRef = Ref{Index: -1}

// Valid reports whether the reference was ever bound to a slot
func (r Ref) Valid() bool {
	return r.Index >= 0 && r.Generation != 0
}

// Ref returns a weak reference to the slot's current occupant
func (p *Pool[T]) Ref(index int) Ref {
	if !p.IsActive(index) {
		return NoRef
	}
	return Ref{Index: index, Generation: p.slots[index].generation}
}

// Resolve returns the referenced value when its slot is still active and
// still holds the same occupant the reference was taken from.
func (p *Pool[T]) Resolve(r Ref) (*T, bool) {
	if !r.Valid() || !p.IsActive(r.Index) {
		return nil, false
	}
	s := &p.slots[r.Index]
	if s.generation != r.Generation {
		return nil, false
	}
	return &s.value, true
}
