package metrics

import (
	"testing"
	"time"
)

func TestCollectorCountsByClass(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(403, 5*time.Millisecond)
	c.Record(401, 5*time.Millisecond)
	c.Record(429, 1*time.Millisecond)
	c.Record(500, 20*time.Millisecond)

	snap := c.Snapshot()
	if snap["requestsTotal"].(uint64) != 5 {
		t.Fatalf("requestsTotal = %v", snap["requestsTotal"])
	}
	if snap["deniedTotal"].(uint64) != 2 {
		t.Fatalf("deniedTotal = %v", snap["deniedTotal"])
	}
	if snap["errorsTotal"].(uint64) != 1 {
		t.Fatalf("errorsTotal = %v", snap["errorsTotal"])
	}
	if snap["rateLimitedTotal"].(uint64) != 1 {
		t.Fatalf("rateLimitedTotal = %v", snap["rateLimitedTotal"])
	}
}
