package common

import (
	"testing"
	"time"
)

func TestCacheService_DeleteByPrefix(t *testing.T) {
	cache := NewCacheService(60, 120)
	cache.Set("ITIN_a", 1, time.Minute)
	cache.Set("ITIN_b", 2, time.Minute)
	cache.Set("CAND_a", 3, time.Minute)

	if err := cache.DeleteByPrefix("ITIN_"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}

	if _, found := cache.Get("ITIN_a"); found {
		t.Error("ITIN_a survived prefix delete")
	}
	if _, found := cache.Get("ITIN_b"); found {
		t.Error("ITIN_b survived prefix delete")
	}
	if _, found := cache.Get("CAND_a"); !found {
		t.Error("CAND_a deleted despite different prefix")
	}
}
