package inventory

import (
	"fmt"
	"math"
	"sync"
	"time"
)

var fixedNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// sequentialIDs yields PREFIX-1, PREFIX-2, ... per prefix.
func sequentialIDs() IDGenerator {
	var mu sync.Mutex
	counters := map[string]int{}
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		counters[prefix]++
		return fmt.Sprintf("%s-%d", prefix, counters[prefix])
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
