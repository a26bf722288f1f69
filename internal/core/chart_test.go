package core

import (
	"math"
	"strings"
	"testing"
)

func TestBuildRingEmpty(t *testing.T) {
	if got := BuildRing(nil); got != nil {
		t.Errorf("BuildRing(nil) = %v, want nil", got)
	}
	if got := BuildRing([]ChartItem{}); got != nil {
		t.Errorf("BuildRing(empty) = %v, want nil", got)
	}
	// All-zero input renders the placeholder, not a zero-slice chart.
	if got := BuildRing([]ChartItem{{Category: "Food", Amount: Money{Cents: 0}}}); got != nil {
		t.Errorf("BuildRing(all zero) = %v, want nil", got)
	}
}

func TestBuildRingShares(t *testing.T) {
	slices := BuildRing([]ChartItem{
		{Category: "Food", Amount: Money{Cents: 7500}, Color: "#ef4444"},
		{Category: "Rent", Amount: Money{Cents: 2500}, Color: "#f59e0b"},
	})
	if len(slices) != 2 {
		t.Fatalf("got %d slices, want 2", len(slices))
	}

	if math.Abs(slices[0].Percent-75) > 0.01 {
		t.Errorf("Food percent = %v, want 75", slices[0].Percent)
	}
	if math.Abs(slices[1].Percent-25) > 0.01 {
		t.Errorf("Rent percent = %v, want 25", slices[1].Percent)
	}

	if slices[0].Label != "Food: 75%" {
		t.Errorf("label = %q", slices[0].Label)
	}
	if slices[0].Tooltip != "Food — $75.00" {
		t.Errorf("tooltip = %q", slices[0].Tooltip)
	}
	if slices[0].Color != "#ef4444" {
		t.Errorf("color = %q", slices[0].Color)
	}

	var total float64
	for _, s := range slices {
		total += s.Percent
	}
	if math.Abs(total-100) > 0.01 {
		t.Errorf("percent total = %v, want 100", total)
	}
}

func TestBuildRingSkipsNonPositive(t *testing.T) {
	slices := BuildRing([]ChartItem{
		{Category: "Food", Amount: Money{Cents: 100}},
		{Category: "Refund", Amount: Money{Cents: -50}},
		{Category: "Empty", Amount: Money{Cents: 0}},
	})
	if len(slices) != 1 || slices[0].Name != "Food" {
		t.Fatalf("slices = %+v", slices)
	}
	if math.Abs(slices[0].Percent-100) > 0.01 {
		t.Errorf("single slice percent = %v, want 100", slices[0].Percent)
	}
}

func TestBuildRingDefaultsColor(t *testing.T) {
	slices := BuildRing([]ChartItem{{Category: "Misc", Amount: Money{Cents: 100}}})
	if slices[0].Color != DefaultCategoryColor {
		t.Errorf("color = %q, want default", slices[0].Color)
	}
}

func TestDonutPathShape(t *testing.T) {
	slices := BuildRing([]ChartItem{
		{Category: "A", Amount: Money{Cents: 600}},
		{Category: "B", Amount: Money{Cents: 400}},
	})
	for _, s := range slices {
		if !strings.HasPrefix(s.Path, "M ") || !strings.HasSuffix(s.Path, "Z") {
			t.Errorf("path for %s not a closed segment: %q", s.Name, s.Path)
		}
		if strings.Count(s.Path, "A ") != 2 {
			t.Errorf("path for %s should have outer and inner arcs: %q", s.Name, s.Path)
		}
	}
}
