package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndFind(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(&Process{ID: 1, Size: 512, PageTable: []int{3, 2}}))
	require.NoError(t, r.Register(&Process{ID: -7, Size: 256, PageTable: []int{1}}))

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Contains(1))
	assert.True(t, r.Contains(-7))
	assert.False(t, r.Contains(2))

	p, ok := r.Find(1)
	require.True(t, ok)
	assert.Equal(t, 512, p.Size)
	assert.Equal(t, 2, p.Pages())

	_, ok = r.Find(99)
	assert.False(t, ok)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Process{ID: 5, Size: 16, PageTable: []int{0}}))

	err := r.Register(&Process{ID: 5, Size: 32, PageTable: []int{1}})
	require.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, r.Len())

	p, _ := r.Find(5)
	assert.Equal(t, 16, p.Size, "original process must survive")
}

func TestRegistry_InsertionOrder(t *testing.T) {
	r := NewRegistry()
	ids := []PID{42, 7, 1000, 0, -3}
	for _, id := range ids {
		require.NoError(t, r.Register(&Process{ID: id}))
	}

	all := r.All()
	require.Len(t, all, len(ids))
	for i, p := range all {
		assert.Equal(t, ids[i], p.ID)
	}
}

func TestRegistry_CapacityDoubles(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, initialCapacity, r.Cap())

	for i := range initialCapacity {
		require.NoError(t, r.Register(&Process{ID: i}))
	}
	assert.Equal(t, initialCapacity, r.Cap())

	require.NoError(t, r.Register(&Process{ID: initialCapacity}))
	assert.Equal(t, 2*initialCapacity, r.Cap())

	for i := initialCapacity + 1; i <= 2*initialCapacity; i++ {
		require.NoError(t, r.Register(&Process{ID: i}))
	}
	assert.Equal(t, 4*initialCapacity, r.Cap())

	// Lookups survive growth.
	for i := 0; i <= 2*initialCapacity; i++ {
		p, ok := r.Find(i)
		require.True(t, ok, "pid %d", i)
		assert.Equal(t, i, p.ID)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup(3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_AllIsCopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Process{ID: 1}))

	all := r.All()
	all[0] = &Process{ID: 2}

	p, ok := r.Find(1)
	require.True(t, ok)
	assert.Equal(t, 1, p.ID)
}

func TestRegistry_Owners(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Process{ID: 1, PageTable: []int{3, 2}}))
	require.NoError(t, r.Register(&Process{ID: 2, PageTable: []int{1}}))

	assert.Equal(t, map[int]PID{3: 1, 2: 1, 1: 2}, r.Owners())
}

func TestProcess_Clone(t *testing.T) {
	p := &Process{ID: 1, Size: 512, PageTable: []int{3, 2}}
	c := p.Clone()
	c.PageTable[0] = 9

	assert.Equal(t, []int{3, 2}, p.PageTable)
	assert.Equal(t, "pid=1 size=512 pages=2", p.String())
}
