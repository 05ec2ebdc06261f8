package sim

import (
	"slices"
	"testing"

	"spacecol/internal/geom"
)

func TestInfluenceAccumulateAndAverage(t *testing.T) {
	buf := NewInfluenceBuffer(3)

	if got := buf.AvgDir(1); !got.IsZero() {
		t.Fatalf("empty slot should average to zero, got %v", got)
	}

	buf.Add(1, geom.V(1, 0))
	buf.Add(1, geom.V(3, 0))

	if buf.Count(1) != 2 {
		t.Fatalf("expected 2 contributions, got %d", buf.Count(1))
	}
	if got := buf.AvgDir(1); got != geom.V(2, 0) {
		t.Fatalf("expected average (2,0), got %v", got)
	}
}

func TestInfluenceEnsureLenAlwaysClears(t *testing.T) {
	buf := NewInfluenceBuffer(3)
	buf.Add(0, geom.V(1, 0))

	// Same length still clears.
	buf.EnsureLen(3)
	if buf.Count(0) != 0 {
		t.Fatal("EnsureLen with unchanged length must clear entries")
	}

	buf.Add(0, geom.V(1, 0))
	buf.EnsureLen(5)
	if buf.Len() != 5 {
		t.Fatalf("expected length 5, got %d", buf.Len())
	}
	for i := 0; i < 5; i++ {
		if buf.Count(i) != 0 || !buf.AvgDir(i).IsZero() {
			t.Fatalf("slot %d not cleared after grow", i)
		}
	}

	buf.Add(4, geom.V(0, 1))
	buf.EnsureLen(2)
	if buf.Len() != 2 {
		t.Fatalf("expected length 2 after shrink, got %d", buf.Len())
	}

	// Growing back within capacity must not resurrect stale data.
	buf.EnsureLen(5)
	if buf.Count(4) != 0 {
		t.Fatal("stale contribution visible after shrink and regrow")
	}
}

func TestInfluencedIndicesAscending(t *testing.T) {
	buf := NewInfluenceBuffer(4)
	buf.Add(2, geom.V(0, 1))
	buf.Add(0, geom.V(1, 0))

	got := buf.Influenced(nil)
	if !slices.Equal(got, []int{0, 2}) {
		t.Fatalf("expected influenced indices [0 2], got %v", got)
	}

	buf.Clear()
	if got := buf.Influenced(nil); len(got) != 0 {
		t.Fatalf("expected no influenced indices after clear, got %v", got)
	}
}
