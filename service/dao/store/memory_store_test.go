package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/procsim/service/dao"
)

type record struct {
	Cycle int
	Label string
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore[int, record](func(r *record) int { return r.Cycle }).
		WithOrder(func(a, b *record) bool { return a.Cycle < b.Cycle })
	ctx := context.Background()

	for _, cycle := range []int{3, 1, 2} {
		require.NoError(t, store.Save(ctx, &record{Cycle: cycle}))
	}
	assert.ErrorIs(t, store.Save(ctx, nil), dao.ErrNilEntity)
	assert.Equal(t, 3, store.Len())

	require.NoError(t, store.Save(ctx, &record{Cycle: 2, Label: "updated"}))
	loaded, err := store.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "updated", loaded.Label)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].Cycle, list[1].Cycle, list[2].Cycle})

	require.NoError(t, store.Delete(ctx, 1))
	assert.ErrorIs(t, store.Delete(ctx, 1), dao.ErrNotFound)
	_, err = store.Load(ctx, 1)
	assert.ErrorIs(t, err, dao.ErrNotFound)
}
