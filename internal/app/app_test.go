package app

import (
	"testing"

	"github.com/coldsnap/freezecalc/pkg/config"
	"github.com/coldsnap/freezecalc/pkg/estimator"
)

func TestBuildDatasetDefaults(t *testing.T) {
	ds := BuildDataset(config.DatasetData{})

	want := estimator.DefaultDataset()
	if len(ds.Anchors) != len(want.Anchors) {
		t.Fatalf("got %d anchors, expected %d", len(ds.Anchors), len(want.Anchors))
	}
	if ds.InstantFreezeBelow != -15 || ds.NoFreezeAbove != 32 {
		t.Errorf("thresholds = (%g, %g), expected (-15, 32)",
			ds.InstantFreezeBelow, ds.NoFreezeAbove)
	}
}

func TestBuildDatasetThresholdsFromAnchors(t *testing.T) {
	ds := BuildDataset(config.DatasetData{
		Anchors: []config.AnchorData{
			{Temperature: 5, Days: 2},
			{Temperature: -10, Days: 0},
			{Temperature: 20, Days: 9},
		},
	})

	if ds.InstantFreezeBelow != -10 {
		t.Errorf("instant_freeze_below = %g, expected -10 (lowest anchor)", ds.InstantFreezeBelow)
	}
	if ds.NoFreezeAbove != 20 {
		t.Errorf("no_freeze_above = %g, expected 20 (highest anchor)", ds.NoFreezeAbove)
	}
}

func TestBuildDatasetExplicitThresholds(t *testing.T) {
	lower, upper := -25.0, 40.0
	ds := BuildDataset(config.DatasetData{
		Anchors: []config.AnchorData{
			{Temperature: 0, Days: 4},
			{Temperature: 10, Days: 8},
		},
		InstantFreezeBelow: &lower,
		NoFreezeAbove:      &upper,
	})

	if ds.InstantFreezeBelow != -25 || ds.NoFreezeAbove != 40 {
		t.Errorf("thresholds = (%g, %g), expected (-25, 40)",
			ds.InstantFreezeBelow, ds.NoFreezeAbove)
	}

	// The result must build a working estimator with an extrapolation
	// zone between the anchors and the thresholds.
	est, err := estimator.New(ds)
	if err != nil {
		t.Fatalf("estimator.New() failed: %v", err)
	}
	r, err := est.Estimate(25)
	if err != nil {
		t.Fatalf("Estimate(25) failed: %v", err)
	}
	if !r.Freezes || r.Days < 0 {
		t.Errorf("Estimate(25) = %+v, expected a non-negative freezing estimate", r)
	}
}
