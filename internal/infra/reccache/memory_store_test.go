package reccache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tripnexus/tripnexus/internal/domain/recommend"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "recommendations:x")
	require.NoError(t, err)
	require.False(t, found)

	recs := []recommend.FinalRecommendation{{RankingPosition: 1, Confidence: "High"}}
	require.NoError(t, store.Save(ctx, "recommendations:x", recs, time.Minute))

	got, found, err := store.Get(ctx, "recommendations:x")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got, 1)
	require.Equal(t, "High", got[0].Confidence)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []recommend.FinalRecommendation{{RankingPosition: 1}}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreCopiesOnSave(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	recs := []recommend.FinalRecommendation{{RankingPosition: 1}}
	require.NoError(t, store.Save(ctx, "k", recs, 0))
	recs[0].RankingPosition = 99

	got, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1, got[0].RankingPosition)
}
