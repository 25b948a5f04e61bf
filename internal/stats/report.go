package stats

import (
	"context"

	"github.com/samber/lo"

	"github.com/verte-zerg/vocadrill/internal/model"
	"github.com/verte-zerg/vocadrill/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Runs         []model.RunAggregate
	WindowRunIDs []string
	MissesAll    []model.MissAggregate
	MissesWindow []model.MissAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}

	windowIDs := lastRunIDs(runs, cfg.CurveWindow)
	missesAll, err := st.ListMissAggregatesForRuns(ctx, runIDs(runs))
	if err != nil {
		return Report{}, err
	}
	missesWindow, err := st.ListMissAggregatesForRuns(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Runs:         runs,
		WindowRunIDs: windowIDs,
		MissesAll:    missesAll,
		MissesWindow: missesWindow,
	}, nil
}

func runIDs(runs []model.RunAggregate) []string {
	return lo.Map(runs, func(r model.RunAggregate, _ int) string { return r.ID })
}

func lastRunIDs(runs []model.RunAggregate, window int) []string {
	if window <= 0 || len(runs) <= window {
		return runIDs(runs)
	}
	return runIDs(runs[len(runs)-window:])
}
