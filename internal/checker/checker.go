package checker

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/August26/ipintel-go/internal/intel"
	"github.com/August26/ipintel-go/internal/model"
)

// Queryer is the single lookup operation RunBatch needs. Satisfied by
// *intel.Client; tests substitute fakes.
type Queryer interface {
	QueryWithFlags(ctx context.Context, ip, flags string) (*intel.Result, error)
}

// RunBatch runs one independent lookup per target through a bounded
// worker pool and returns all results. One request per target, one
// outcome: nothing is retried and nothing is cached.
func RunBatch(ctx context.Context, q Queryer, targets []model.Target, cfg model.RunConfig) []model.CheckResult {
	resultsCh := make(chan model.CheckResult, len(targets))
	wg := &sync.WaitGroup{}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	for _, t := range targets {
		t := t
		wg.Add(1)
		go func() {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			resultsCh <- checkOne(ctx, q, t, cfg)
		}()
	}

	wg.Wait()
	close(resultsCh)

	out := make([]model.CheckResult, 0, len(targets))
	for r := range resultsCh {
		out = append(out, r)
	}
	return out
}

// checkOne performs the single lookup for one target and flattens the
// outcome into a reportable row.
func checkOne(ctx context.Context, q Queryer, t model.Target, cfg model.RunConfig) model.CheckResult {
	out := model.CheckResult{Input: t, ScoreValue: -1}

	flags := t.Flags
	if flags == "" {
		flags = cfg.QueryFlags
	}

	start := time.Now()
	res, err := q.QueryWithFlags(ctx, t.IP, flags)
	out.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		out.Error = err.Error()
		out.ErrorKind = Classify(err)
		var hse *intel.HTTPStatusError
		if errors.As(err, &hse) {
			out.StatusCode = hse.StatusCode
		}
		return out
	}

	out.OK = true
	out.StatusCode = http.StatusOK
	out.Score = res.Score
	out.BadIP = res.BadIP == 1
	out.Country = res.Country

	if v, perr := res.ScoreValue(); perr == nil {
		out.ScoreValue = v
	}
	out.RiskLabel = RiskLabel(out.ScoreValue)

	if cfg.Resolver != nil {
		if info, gerr := cfg.Resolver.Lookup(intel.NormalizeIP(t.IP)); gerr == nil {
			if out.Country == "" {
				out.Country = info.Country
			}
			out.City = info.City
			out.ISP = info.ISP
		}
	}

	return out
}
