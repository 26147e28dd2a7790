package recommend

import (
	"fmt"
	"math"
)

// CacheKey canonicalizes a request into a bucketed cache key so that
// near-identical requests share an entry: coordinates at two decimals,
// budget to the nearest thousand.
func CacheKey(req TravelRequest) string {
	category := req.PreferredCategory
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("recommendations:%d:%d:%d:%d:%d:%d:%s:%s",
		int(math.Round(req.DepartureLat*100)),
		int(math.Round(req.DepartureLng*100)),
		req.Age,
		int(math.Round(float64(req.Budget)/1000))*1000,
		req.DurationDays,
		req.TravelMonth,
		req.GroupType,
		category,
	)
}
