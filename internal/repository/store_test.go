package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/superhero-sightings/internal/model"
	"github.com/iliyamo/superhero-sightings/internal/testutil"
)

func TestStore_WithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(ctx context.Context) error {
		h := model.Superhero{Name: "Temp", Description: "Gone soon"}
		if err := s.Superheroes.Create(ctx, &h); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := s.Superheroes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_WithTxNestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	hero := testutil.Hero(t, s, "Ant-Man")

	err := s.WithTx(ctx, func(ctx context.Context) error {
		// DeleteByID opens its own unit which must join this one.
		if _, err := s.Superheroes.DeleteByID(ctx, hero.ID); err != nil {
			return err
		}
		return s.WithTx(ctx, func(ctx context.Context) error {
			h := model.Superhero{Name: "Wasp", Description: "Shrinks"}
			return s.Superheroes.Create(ctx, &h)
		})
	})
	require.NoError(t, err)

	list, err := s.Superheroes.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Wasp", list[0].Name)
}
