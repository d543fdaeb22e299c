package domain

import "fmt"

// ParentFunc returns the parent of id, or nil at a root.
type ParentFunc func(id int64) (*int64, error)

// PathToRoot walks parentOf from start and returns [start, parent, ..., root].
// Depth is unbounded; a repeated id yields ErrCycle, so a corrupted store
// cannot make the walk spin.
func PathToRoot(start int64, parentOf ParentFunc) ([]int64, error) {
	path := []int64{start}
	seen := map[int64]bool{start: true}
	cur := start
	for {
		parent, err := parentOf(cur)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return path, nil
		}
		if seen[*parent] {
			return nil, fmt.Errorf("id %d revisited: %w", *parent, ErrCycle)
		}
		seen[*parent] = true
		path = append(path, *parent)
		cur = *parent
	}
}

// WouldCycle reports whether making newParent the parent of id closes a
// loop, i.e. id is newParent itself or one of its ancestors.
func WouldCycle(id int64, newParent *int64, parentOf ParentFunc) (bool, error) {
	if newParent == nil {
		return false, nil
	}
	if *newParent == id {
		return true, nil
	}
	path, err := PathToRoot(*newParent, parentOf)
	if err != nil {
		return false, err
	}
	for _, ancestor := range path {
		if ancestor == id {
			return true, nil
		}
	}
	return false, nil
}
