package service

// Field carries one optional change in a partial update. A zero Field
// leaves the stored value alone; for nullable columns T is a pointer and a
// set Field with a nil Value clears the column.
type Field[T any] struct {
	Set   bool
	Value T
}

// SetTo returns a Field that changes the target to v.
func SetTo[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func (f Field[T]) applyTo(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}
