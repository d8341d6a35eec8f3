package heatmap

import (
	"errors"
	"sync"
	"testing"
)

func TestGradientCache_SharesTables(t *testing.T) {
	c := NewGradientCache(0)

	a, err := c.Table([]ColorStop{{0, Blue}, {1, Red}})
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Table([]ColorStop{{1, Red}, {0, Blue}})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("reordered stops should hit the same cached table")
	}

	other, err := c.Table([]ColorStop{{0, Blue}, {1, Green}})
	if err != nil {
		t.Fatal(err)
	}
	if other == a {
		t.Error("different stops returned the same table")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 2 {
		t.Errorf("hits/misses = %d/%d, want 1/2", st.Hits, st.Misses)
	}
}

func TestGradientCache_MatchesBuild(t *testing.T) {
	c := NewGradientCache(0)
	stops := DefaultGradient()

	cached, err := c.Table(stops)
	if err != nil {
		t.Fatal(err)
	}
	if !cached.Equal(mustBuild(t, stops)) {
		t.Error("cached table differs from BuildGradient")
	}
}

func TestGradientCache_ErrorsNotCached(t *testing.T) {
	c := NewGradientCache(0)

	_, err := c.Table([]ColorStop{{1.5, Red}})
	if !errors.Is(err, ErrInvalidStop) {
		t.Fatalf("error = %v, want ErrInvalidStop", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed build, want 0", c.Len())
	}
}

func TestGradientCache_Clear(t *testing.T) {
	c := NewGradientCache(0)
	if _, err := c.Table(DefaultGradient()); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
}

func TestGradientCache_Concurrent(t *testing.T) {
	c := NewGradientCache(0)
	stops := DefaultGradient()

	tables := make([]*GradientTable, 16)
	var wg sync.WaitGroup
	for i := range tables {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tables[i], _ = c.Table(stops)
		}()
	}
	wg.Wait()

	for i, tb := range tables {
		if tb != tables[0] {
			t.Fatalf("goroutine %d got a different table", i)
		}
	}
	if st := c.Stats(); st.Misses != 1 {
		t.Errorf("misses = %d, want exactly one build", st.Misses)
	}
}

func TestGradientKey(t *testing.T) {
	a := gradientKey([]ColorStop{{0.5, Red}, {0, Blue}})
	b := gradientKey([]ColorStop{{0, Blue}, {0.5, Red}})
	if a != b {
		t.Errorf("keys differ for reordered stops: %q vs %q", a, b)
	}

	// Tie order matters for the step, so it must matter for the key.
	c := gradientKey([]ColorStop{{0.5, Red}, {0.5, Blue}})
	d := gradientKey([]ColorStop{{0.5, Blue}, {0.5, Red}})
	if c == d {
		t.Error("keys equal for different tie order")
	}

	if gradientKey(nil) != "" {
		t.Error("empty stops should have an empty key")
	}
}
