package service

import (
	"testing"
	"time"
)

func TestBuildEnrollmentTrend(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	perDay := map[string]int64{
		"2026-03-10": 5,
		"2026-03-08": 2,
	}

	trend := buildEnrollmentTrend(7, perDay, now)
	if len(trend) != 7 {
		t.Fatalf("trend length = %d, want 7", len(trend))
	}

	// 从最早到最近，缺数据的日期补 0
	if trend[0].Date != "2026-03-04" || trend[0].Count != 0 {
		t.Errorf("trend[0] = %+v, want 2026-03-04/0", trend[0])
	}
	if trend[4].Date != "2026-03-08" || trend[4].Count != 2 {
		t.Errorf("trend[4] = %+v, want 2026-03-08/2", trend[4])
	}
	if trend[6].Date != "2026-03-10" || trend[6].Count != 5 {
		t.Errorf("trend[6] = %+v, want 2026-03-10/5", trend[6])
	}
}

func TestOverviewCacheKeyPerRange(t *testing.T) {
	from1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	from2 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// 不同统计区间必须落到不同缓存键，避免串用彼此的结果
	if overviewCacheKey(from1, to1) == overviewCacheKey(from2, to1) {
		t.Errorf("distinct ranges share cache key %q", overviewCacheKey(from1, to1))
	}
	// 同一区间键稳定
	if overviewCacheKey(from1, to1) != overviewCacheKey(from1, to1) {
		t.Error("cache key not stable for the same range")
	}
	if got, want := overviewCacheKey(from1, to1), "analytics:overview:2026-02-01:2026-03-01"; got != want {
		t.Errorf("overviewCacheKey = %q, want %q", got, want)
	}
}

func TestBuildEnrollmentTrendEmpty(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	trend := buildEnrollmentTrend(7, map[string]int64{}, now)

	if len(trend) != 7 {
		t.Fatalf("trend length = %d, want 7", len(trend))
	}
	for i, p := range trend {
		if p.Count != 0 {
			t.Errorf("trend[%d].Count = %d, want 0", i, p.Count)
		}
	}
	// 日期连续且递增
	for i := 1; i < len(trend); i++ {
		prev, _ := time.Parse("2006-01-02", trend[i-1].Date)
		cur, _ := time.Parse("2006-01-02", trend[i].Date)
		if !cur.After(prev) {
			t.Errorf("trend dates not increasing at %d: %s -> %s", i, trend[i-1].Date, trend[i].Date)
		}
	}
}
