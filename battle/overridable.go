package battle

// Overridable pairs a battle-reported value with an optional user override.
// The override takes precedence while set; clearing it falls back to the
// revealed value. The redundant-override rule lives here so every field
// shares one implementation: an override equal to the revealed value is
// dropped instead of being stored.
type Overridable[T any] struct {
	Revealed T  `json:"revealed"`
	Dirty    *T `json:"dirty,omitempty"`
}

// Effective returns the override when present, otherwise the revealed value.
func (o Overridable[T]) Effective() T {
	if o.Dirty != nil {
		return *o.Dirty
	}
	return o.Revealed
}

// HasDirty reports whether an override is set.
func (o Overridable[T]) HasDirty() bool {
	return o.Dirty != nil
}

// SetDirty stores an override without reconciling.
func (o *Overridable[T]) SetDirty(value T) {
	copied := value
	o.Dirty = &copied
}

// ClearDirty drops the override.
func (o *Overridable[T]) ClearDirty() {
	o.Dirty = nil
}

// Reconcile drops the override when eq reports it equal to the revealed
// value, returning whether it was cleared.
func (o *Overridable[T]) Reconcile(eq func(a, b T) bool) bool {
	if o.Dirty == nil || eq == nil {
		return false
	}
	if eq(*o.Dirty, o.Revealed) {
		o.Dirty = nil
		return true
	}
	return false
}

// SetRevealed updates the revealed value and reconciles any now-redundant
// override in one step.
func (o *Overridable[T]) SetRevealed(value T, eq func(a, b T) bool) {
	o.Revealed = value
	o.Reconcile(eq)
}

// CloneWith deep-copies the pair using the provided value cloner (pass nil
// for value types that copy by assignment).
func (o Overridable[T]) CloneWith(clone func(T) T) Overridable[T] {
	cloned := o
	if clone != nil {
		cloned.Revealed = clone(o.Revealed)
	}
	if o.Dirty != nil {
		value := *o.Dirty
		if clone != nil {
			value = clone(value)
		}
		cloned.Dirty = &value
	}
	return cloned
}
