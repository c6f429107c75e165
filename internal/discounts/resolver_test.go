package discounts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/giftloom/configurator-backend/pkg/config"
	"github.com/giftloom/configurator-backend/pkg/enums"
)

func newTestResolver(latency time.Duration) *Resolver {
	return NewResolver(config.DiscountsConfig{ResolveLatency: latency}, nil)
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"valentine20":   "VALENTINE20",
		"  save10  ":    "SAVE10",
		"Couple15":      "COUPLE15",
		"":              "",
		"  ":            "",
		"already-UPPER": "ALREADY-UPPER",
	}
	for in, want := range cases {
		if got := Canonicalize(in); got != want {
			t.Fatalf("Canonicalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveKnownCode(t *testing.T) {
	t.Parallel()

	r := newTestResolver(0)
	dc, err := r.Resolve(context.Background(), "valentine20")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !dc.IsValid {
		t.Fatalf("expected VALENTINE20 to be valid")
	}
	if dc.Code != "VALENTINE20" {
		t.Fatalf("code = %q, want VALENTINE20", dc.Code)
	}
	if dc.DiscountType != enums.DiscountTypePercentage || dc.Value != 20 {
		t.Fatalf("unexpected discount: %+v", dc)
	}
}

func TestResolveScopedCode(t *testing.T) {
	t.Parallel()

	r := newTestResolver(0)
	dc, err := r.Resolve(context.Background(), "JEWELRY25")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(dc.ApplicableProducts) != 3 {
		t.Fatalf("applicable products = %v, want 3 categories", dc.ApplicableProducts)
	}
}

func TestResolveUnknownCodeIsNotAnError(t *testing.T) {
	t.Parallel()

	r := newTestResolver(0)
	dc, err := r.Resolve(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dc.IsValid {
		t.Fatalf("unknown code must resolve invalid")
	}
	if dc.Code != "NOPE" {
		t.Fatalf("code = %q, want canonical form NOPE", dc.Code)
	}
	if dc.Value != 0 {
		t.Fatalf("value = %v, want 0", dc.Value)
	}
}

func TestResolveHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	r := newTestResolver(5 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Resolve(ctx, "SAVE10"); err == nil {
		t.Fatalf("expected context error")
	}
	if r.IsValidating("SAVE10") {
		t.Fatalf("in-flight tracking must be cleared after cancellation")
	}
}

func TestIsValidatingTracksInFlightResolutions(t *testing.T) {
	t.Parallel()

	r := newTestResolver(100 * time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			if _, err := r.Resolve(context.Background(), "couple15"); err != nil {
				t.Errorf("Resolve: %v", err)
			}
		}()
	}

	deadline := time.Now().Add(time.Second)
	for !r.IsValidating("COUPLE15") {
		if time.Now().After(deadline) {
			t.Fatalf("resolution never reported as in flight")
		}
		time.Sleep(time.Millisecond)
	}

	wg.Wait()
	if r.IsValidating("COUPLE15") {
		t.Fatalf("in-flight count should drop to zero once both resolutions finish")
	}
}
