package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parents(m map[int64]int64) ParentFunc {
	return func(id int64) (*int64, error) {
		p, ok := m[id]
		if !ok {
			return nil, nil
		}
		return &p, nil
	}
}

func TestPathToRoot_ChainDepth(t *testing.T) {
	// 4 -> 3 -> 2 -> 1 (root)
	path, err := PathToRoot(4, parents(map[int64]int64{4: 3, 3: 2, 2: 1}))
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3, 2, 1}, path)
}

func TestPathToRoot_RootOnly(t *testing.T) {
	path, err := PathToRoot(7, parents(nil))
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, path)
}

func TestPathToRoot_CycleDetected(t *testing.T) {
	_, err := PathToRoot(1, parents(map[int64]int64{1: 2, 2: 3, 3: 1}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestPathToRoot_DeepChain(t *testing.T) {
	const depth = 1000
	chain := map[int64]int64{}
	for i := int64(depth); i > 1; i-- {
		chain[i] = i - 1
	}
	path, err := PathToRoot(depth, parents(chain))
	require.NoError(t, err)
	assert.Len(t, path, depth)
	assert.Equal(t, int64(1), path[len(path)-1])

	cycle, err := WouldCycle(1, Int64Ptr(depth), parents(chain))
	require.NoError(t, err)
	assert.True(t, cycle, "root under its deepest descendant")
}

func TestPathToRoot_PropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := PathToRoot(1, func(int64) (*int64, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestWouldCycle(t *testing.T) {
	tree := parents(map[int64]int64{2: 1, 3: 2, 4: 1})

	self, err := WouldCycle(2, Int64Ptr(2), tree)
	require.NoError(t, err)
	assert.True(t, self, "self parent")

	desc, err := WouldCycle(1, Int64Ptr(3), tree)
	require.NoError(t, err)
	assert.True(t, desc, "descendant as parent")

	sibling, err := WouldCycle(3, Int64Ptr(4), tree)
	require.NoError(t, err)
	assert.False(t, sibling)

	root, err := WouldCycle(3, nil, tree)
	require.NoError(t, err)
	assert.False(t, root)
}
