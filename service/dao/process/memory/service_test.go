package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/service/dao"
)

func TestService(t *testing.T) {
	srv := New()
	ctx := context.Background()

	states := []process.State{process.StateReady, process.StateNew, process.StateReady, process.StateWaiting}
	for i, state := range states {
		require.NoError(t, srv.Save(ctx, &process.Process{ID: len(states) - i, State: state}))
	}
	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &process.Process{}), dao.ErrInvalidID)

	all, err := srv.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{all[0].ID, all[1].ID, all[2].ID, all[3].ID})

	ready, err := srv.List(ctx, dao.NewParameter(dao.StateParameter, "READY"))
	require.NoError(t, err)
	require.Len(t, ready, 2)
	assert.Equal(t, 2, ready[0].ID)
	assert.Equal(t, 4, ready[1].ID)

	loaded, err := srv.Load(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, process.StateNew, loaded.State)

	require.NoError(t, srv.Delete(ctx, 3))
	_, err = srv.Load(ctx, 3)
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, 0), dao.ErrInvalidID)
}
