package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/vocadrill/internal/model"
	"github.com/verte-zerg/vocadrill/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		run := model.RunRecord{
			StartedAt:  start,
			EndedAt:    start.Add(30 * time.Second),
			Base:       "decks/words",
			Mode:       model.ModePractice,
			Score:      9,
			Total:      10,
			WrongCount: 1,
		}
		misses := []model.MissedEntry{{Word: "apple", Expected: "사과", FailureCount: 1}}
		id, err := st.InsertRun(ctx, run, misses)
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Base:        "decks/words",
		Last:        2,
		CurveWindow: 1,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(report.Runs))
	}
	if report.Runs[0].ID != ids[1] || report.Runs[1].ID != ids[2] {
		t.Fatalf("unexpected run ids: %+v", report.Runs)
	}
	if len(report.WindowRunIDs) != 1 || report.WindowRunIDs[0] != ids[2] {
		t.Fatalf("unexpected window ids: %v", report.WindowRunIDs)
	}
	if len(report.MissesAll) != 1 || report.MissesAll[0].Failures != 2 {
		t.Fatalf("unexpected all-run misses: %+v", report.MissesAll)
	}
	if len(report.MissesWindow) != 1 || report.MissesWindow[0].Failures != 1 {
		t.Fatalf("unexpected window misses: %+v", report.MissesWindow)
	}
}
