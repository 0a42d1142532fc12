package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	tx, err := repo.BeginLaunchpadTx(ctx)
	require.NoError(t, err)
	id, err := tx.CreateCommand(ctx, &entity.Command{SaleID: "a", Action: "sale.purchase", Time: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.NoError(t, tx.CreateEvents(ctx, []*entity.Event{{CommandID: id, SaleID: "a", Name: "Purchase", Payload: json.RawMessage(`{}`)}}))

	_, err = tx.BeginLaunchpadTx(ctx)
	assert.ErrorIs(t, err, ErrTxInProgress)

	commands, err := repo.GetCommands(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, commands, "uncommitted commands must not be visible")

	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx), "rollback after commit is a no-op")

	commands, err = repo.GetCommands(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, "a", commands[0].SaleID)

	events, err := repo.GetEventsBySaleID(ctx, "a", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Purchase", events[0].Name)
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	tx, err := repo.BeginLaunchpadTx(ctx)
	require.NoError(t, err)
	_, err = tx.CreateCommand(ctx, &entity.Command{SaleID: "a", Action: "sale.purchase"})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	commands, err := repo.GetCommands(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, commands)

	id, err := repo.CreateCommand(ctx, &entity.Command{SaleID: "a", Action: "sale.purchase"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	for i := 0; i < 5; i++ {
		saleID := "a"
		if i%2 == 1 {
			saleID = "b"
		}
		id, err := repo.CreateCommand(ctx, &entity.Command{SaleID: saleID, Action: "sale.purchase", Time: uint64(i)})
		require.NoError(t, err)
		require.NoError(t, repo.CreateEvents(ctx, []*entity.Event{{CommandID: id, SaleID: saleID, Name: "Purchase"}}))
	}

	type testCase struct {
		name   string
		fromID int64
		limit  int32
		ids    []int64
	}
	testCases := []testCase{
		{name: "first page", fromID: 0, limit: 2, ids: []int64{1, 2}},
		{name: "next page", fromID: 2, limit: 2, ids: []int64{3, 4}},
		{name: "last page", fromID: 4, limit: 2, ids: []int64{5}},
		{name: "past the end", fromID: 5, limit: 2, ids: []int64{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			commands, err := repo.GetCommands(ctx, tc.fromID, tc.limit)
			require.NoError(t, err)
			ids := make([]int64, 0, len(commands))
			for _, c := range commands {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tc.ids, ids)
		})
	}

	events, err := repo.GetEventsBySaleID(ctx, "a", 2, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(3), events[0].CommandID)
	assert.Equal(t, int64(5), events[1].CommandID)
}
