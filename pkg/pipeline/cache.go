package pipeline

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/matzehuels/polycalc/pkg/cache"
	"github.com/matzehuels/polycalc/pkg/factor"
	"github.com/matzehuels/polycalc/pkg/observability"
	"github.com/matzehuels/polycalc/pkg/poly"
	"github.com/matzehuels/polycalc/pkg/rational"
)

// factorKeyType labels factorization entries in cache hooks.
const factorKeyType = "factor"

// cachedFactorization is the stored form of a factor.Factorization.
// complex128 has no JSON encoding, so approximations are [re, im] pairs.
type cachedFactorization struct {
	Leading        rational.Rational `json:"leading"`
	Roots          []factor.Root     `json:"roots"`
	Approximations [][2]float64      `json:"approximations"`
	MaxResidual    float64           `json:"max_residual"`
}

// factorKey identifies a factorization by the coefficients and every setting
// that can change its outcome. The seed is part of the key because it fixes
// the slot order of the roots. Time-seeded runs (seed 0) share one entry.
func (r *Runner) factorKey(p poly.Polynomial) string {
	coeffs := make([]string, 0, p.Degree()+1)
	for _, c := range p.Coefficients() {
		coeffs = append(coeffs, strconv.FormatFloat(c, 'g', -1, 64))
	}
	o := r.Options
	return cache.Key(factorKeyType,
		strings.Join(coeffs, ","),
		strconv.Itoa(o.Iterations),
		strconv.FormatFloat(o.InitRange, 'g', -1, 64),
		strconv.FormatFloat(o.Tolerance, 'g', -1, 64),
		strconv.FormatFloat(o.RootPrecision, 'g', -1, 64),
		strconv.FormatInt(o.Seed, 10),
	)
}

// loadFactorization returns a cached factorization, or false on a miss.
// Backend failures and undecodable entries count as misses.
func (r *Runner) loadFactorization(ctx context.Context, key string) (*factor.Factorization, bool) {
	data, hit, err := r.Options.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "err", err)
	}
	if !hit || err != nil {
		observability.Cache().OnCacheMiss(ctx, factorKeyType)
		return nil, false
	}

	var entry cachedFactorization
	if err := json.Unmarshal(data, &entry); err != nil {
		r.Logger.Debug("dropping bad cache entry", "err", err)
		_ = r.Options.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, factorKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, factorKeyType)

	f := &factor.Factorization{
		Leading:        entry.Leading,
		Roots:          entry.Roots,
		Approximations: make([]complex128, len(entry.Approximations)),
		MaxResidual:    entry.MaxResidual,
	}
	for i, z := range entry.Approximations {
		f.Approximations[i] = complex(z[0], z[1])
	}
	return f, true
}

// storeFactorization caches f. Failures are logged and otherwise ignored.
func (r *Runner) storeFactorization(ctx context.Context, key string, f *factor.Factorization) {
	entry := cachedFactorization{
		Leading:        f.Leading,
		Roots:          f.Roots,
		Approximations: make([][2]float64, len(f.Approximations)),
		MaxResidual:    f.MaxResidual,
	}
	for i, z := range f.Approximations {
		entry.Approximations[i] = [2]float64{real(z), imag(z)}
	}

	data, err := json.Marshal(entry)
	if err == nil {
		err = r.Options.Cache.Set(ctx, key, data, r.Options.CacheTTL)
	}
	if err != nil {
		r.Logger.Debug("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, factorKeyType, len(data))
}
