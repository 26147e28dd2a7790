package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheKeyBucketsNearbyRequestsTogether(t *testing.T) {
	base := delhiRequest()

	jitterCoords := base
	jitterCoords.DepartureLat += 0.0005
	jitterCoords.DepartureLng -= 0.002

	jitterBudget := base
	jitterBudget.Budget = 50400 // rounds to the same thousand

	require.Equal(t, CacheKey(base), CacheKey(jitterCoords))
	require.Equal(t, CacheKey(base), CacheKey(jitterBudget))
}

func TestCacheKeySeparatesDistinctRequests(t *testing.T) {
	base := delhiRequest()

	farAway := base
	farAway.DepartureLat = 19.0760 // Mumbai

	bigBudget := base
	bigBudget.Budget = 150000

	otherGroup := base
	otherGroup.GroupType = GroupFamily

	otherMonth := base
	otherMonth.TravelMonth = 12

	withCategory := base
	withCategory.PreferredCategory = "Beach"

	keys := map[string]bool{
		CacheKey(base):         true,
		CacheKey(farAway):      true,
		CacheKey(bigBudget):    true,
		CacheKey(otherGroup):   true,
		CacheKey(otherMonth):   true,
		CacheKey(withCategory): true,
	}
	require.Len(t, keys, 6)
}

func TestCacheKeyDefaultsCategoryToAll(t *testing.T) {
	req := delhiRequest()
	require.Contains(t, CacheKey(req), ":all")
}
