package vividvalid

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jaainil/vivid-valid/types"
)

// ValidateBatch validates a collection of addresses. Duplicates are removed
// case-insensitively (when opts.Deduplicate is set), completed results are
// cached and reused, and work is fanned out in fixed-size chunks with
// bounded concurrency and a pacing delay between chunks. Results preserve
// the deduplicated input order; a failure on one address never fails the
// batch.
func (v *Validator) ValidateBatch(ctx context.Context, emails []string, opts BulkOptions) (*types.BulkReport, error) {
	if len(emails) == 0 {
		return nil, ErrEmptyBatch
	}
	opts = opts.withDefaults()

	start := time.Now()
	report := &types.BulkReport{Total: len(emails)}

	inputs := emails
	if opts.Deduplicate {
		inputs = dedupe(emails)
		report.DuplicatesRemoved = len(emails) - len(inputs)
	}
	report.Processed = len(inputs)
	report.Results = make([]*types.ValidationResult, len(inputs))

	for chunkStart := 0; chunkStart < len(inputs); chunkStart += opts.BatchSize {
		chunkEnd := chunkStart + opts.BatchSize
		if chunkEnd > len(inputs) {
			chunkEnd = len(inputs)
		}

		g := new(errgroup.Group)
		g.SetLimit(opts.MaxConcurrency)
		for i := chunkStart; i < chunkEnd; i++ {
			i := i
			g.Go(func() error {
				report.Results[i] = v.validateOne(ctx, inputs[i], opts)
				return nil
			})
		}
		_ = g.Wait()

		v.log.WithField("done", chunkEnd).WithField("total", len(inputs)).
			Debug("bulk chunk complete")

		// Pacing between chunks keeps remote mail servers from seeing a
		// burst of probes.
		if chunkEnd < len(inputs) && opts.ChunkDelay > 0 {
			select {
			case <-time.After(opts.ChunkDelay):
			case <-ctx.Done():
			}
		}
	}

	for i, r := range report.Results {
		if r.Status == types.StatusError {
			report.Errors = append(report.Errors, types.BulkError{
				Email: inputs[i],
				Error: r.Reason,
			})
		}
	}

	report.Summary = summarize(report.Results)
	report.ValidationTimeMs = time.Since(start).Milliseconds()
	return report, nil
}

// validateOne wraps a single validation with cache lookup and panic
// isolation.
func (v *Validator) validateOne(ctx context.Context, email string, opts BulkOptions) (result *types.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &types.ValidationResult{
				Email:           email,
				SMTPDeliverable: types.DeliverableNo,
				Status:          types.StatusError,
				Reason:          fmt.Sprintf("internal error: %v", r),
			}
		}
	}()

	key := strings.ToLower(strings.TrimSpace(email))
	if opts.EnableCache {
		if cached, ok := v.bulkCache.Get(ctx, key); ok {
			return cached
		}
	}

	result = v.Validate(ctx, email, opts.Options)
	if opts.EnableCache && result.Status != types.StatusError {
		v.bulkCache.Put(ctx, key, result)
	}
	return result
}

func (o BulkOptions) withDefaults() BulkOptions {
	if o.BatchSize <= 0 {
		o.BatchSize = 10
	}
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = 10
	}
	return o
}

// dedupe removes case-insensitive duplicates, keeping first occurrences in
// their original order.
func dedupe(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		key := strings.ToLower(strings.TrimSpace(e))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

// summarize aggregates a batch into counts, averages and recommendations.
func summarize(results []*types.ValidationResult) types.BulkSummary {
	summary := types.BulkSummary{
		StatusBreakdown: make(map[types.Status]int),
	}

	domains := make(map[string]int)
	reasons := make(map[string]int)
	totalScore := 0

	for _, r := range results {
		summary.StatusBreakdown[r.Status]++
		if r.Disposable {
			summary.DisposableCount++
		}
		if r.TypoDetected {
			summary.TypoCount++
		}
		totalScore += r.Score
		if at := strings.LastIndex(r.Email, "@"); at >= 0 && at < len(r.Email)-1 {
			domains[strings.ToLower(r.Email[at+1:])]++
		}
		if r.Reason != "" {
			reasons[r.Reason]++
		}
	}

	if len(results) > 0 {
		summary.AverageScore = float64(totalScore) / float64(len(results))
	}
	summary.TopDomains = topDomains(domains, 10)
	summary.CommonReasons = topReasons(reasons, 5)
	summary.Recommendations = recommend(summary, len(results))
	return summary
}

func topDomains(counts map[string]int, limit int) []types.DomainCount {
	out := make([]types.DomainCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, types.DomainCount{Domain: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Domain < out[j].Domain
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func topReasons(counts map[string]int, limit int) []types.ReasonCount {
	out := make([]types.ReasonCount, 0, len(counts))
	for r, n := range counts {
		out = append(out, types.ReasonCount{Reason: r, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// recommend derives advisory messages from batch ratios.
func recommend(s types.BulkSummary, total int) []string {
	if total == 0 {
		return nil
	}
	var recs []string

	if ratio(s.DisposableCount, total) > 0.10 {
		recs = append(recs, "More than 10% of addresses are disposable; consider blocking disposable providers at signup.")
	}
	if ratio(s.TypoCount, total) > 0.05 {
		recs = append(recs, "Frequent domain typos detected; surface correction suggestions in your signup form.")
	}
	if ratio(s.StatusBreakdown[types.StatusInvalid], total) > 0.20 {
		recs = append(recs, "Over 20% of addresses are invalid; this list may be stale or low quality.")
	}
	if ratio(s.StatusBreakdown[types.StatusRisky], total) > 0.30 {
		recs = append(recs, "A large share of addresses are risky; sending to all of them may hurt deliverability.")
	}
	return recs
}

func ratio(n, total int) float64 {
	return float64(n) / float64(total)
}
