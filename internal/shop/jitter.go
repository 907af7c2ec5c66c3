package shop

import (
	"context"
	"log/slog"
	"math/rand"
	"time"
)

// jitterChance is the per-product probability of a stock change per step.
const jitterChance = 0.1

// Jitter simulates periodic stock drift for demo purposes: every interval,
// each product has a 10% chance of moving by -1, 0 or +1, clamped at zero.
//
// The drift deliberately reproduces the staleness window between a cart's
// stock check and the checkout debit; it is opt-in and only runs under the
// serve command.
type Jitter struct {
	catalog  *Catalog
	interval time.Duration
	rng      *rand.Rand
}

// NewJitter creates a jitter source over the catalog. The rand source is
// injected so tests can drive Step deterministically.
func NewJitter(catalog *Catalog, interval time.Duration, rng *rand.Rand) *Jitter {
	return &Jitter{catalog: catalog, interval: interval, rng: rng}
}

// Run applies Step on every tick until ctx is cancelled.
func (j *Jitter) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			changed, err := j.Step()
			if err != nil {
				return err
			}
			if changed > 0 {
				slog.Debug("simulated stock update", "products", changed)
			}
		}
	}
}

// Step applies one round of simulated stock changes and persists if any
// product moved. Returns the number of products changed.
func (j *Jitter) Step() (int, error) {
	changed := 0
	for i := range j.catalog.products {
		if j.rng.Float64() >= jitterChance {
			continue
		}
		delta := j.rng.Intn(3) - 1 // -1, 0 or +1
		if delta == 0 {
			continue
		}
		p := &j.catalog.products[i]
		next := p.Stock + delta
		if next < 0 {
			next = 0
		}
		if next != p.Stock {
			p.Stock = next
			changed++
		}
	}

	if changed == 0 {
		return 0, nil
	}
	if err := j.catalog.saveProducts("jitter"); err != nil {
		return 0, err
	}
	return changed, nil
}
