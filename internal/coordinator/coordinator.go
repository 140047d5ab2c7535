package coordinator

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/fetch"
	"github.com/AdguardTeam/FilterListManager/internal/filterlist"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite"
	"github.com/AdguardTeam/FilterListManager/internal/logging"
)

// RepositoryFactory builds the per-entity repositories bound to one
// transaction handle, mirroring the teacher's pattern of constructing
// repositories around whatever *sql.DB/*sql.Tx a unit of work holds.
type RepositoryFactory func(tx *sql.Tx) (repository.FilterRepository, repository.RulesListRepository, repository.FilterInnerFlagsRepository)

// Coordinator is the C12 state machine: per cycle it selects stale filters,
// fetches and parses each (diff-first, full-fetch fallback), and commits
// the result in one transaction per filter (spec §4.12).
type Coordinator struct {
	TxManager   *sqlite.TxManager
	NewRepos    RepositoryFactory
	Filters     repository.FilterRepository
	Rules       repository.RulesListRepository
	Fetcher     *fetch.Fetcher
	Constants   filterlist.ConstantSet
	Locale      string
	Parallelism int
	Timeout     time.Duration
	Recorder    Recorder
}

// Run executes one update cycle: it reads every enabled filter, determines which
// are stale, and processes each stale filter through fetch→parse→diff→
// commit, up to Parallelism concurrently (spec §4.12, §5).
func (c *Coordinator) Run(ctx context.Context) (*UpdateResult, error) {
	cycleID := uuid.NewString()
	ctx = logging.WithCycleID(ctx, cycleID)
	log := logging.FromContext(ctx)

	start := time.Now()
	recorder := c.Recorder
	if recorder == nil {
		recorder = NopRecorder{}
	}

	all, err := c.Filters.SelectEnabled(ctx)
	if err != nil {
		return nil, err
	}

	stale := make([]entity.Filter, 0, len(all))
	now := time.Now()
	for _, f := range all {
		if isStale(f, now) {
			stale = append(stale, f)
		}
	}
	recorder.IncFiltersStale(len(stale))
	log.Info().Int("total", len(all)).Int("stale", len(stale)).Msg("update cycle starting")

	result := newUpdateResult()
	var mu sync.Mutex

	patchCache := fetch.NewPatchCache()

	parallelism := c.Parallelism
	if parallelism <= 0 {
		parallelism = 4
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallelism)

	for _, f := range stale {
		f := f
		group.Go(func() error {
			filterCtx := logging.WithFilterID(groupCtx, int64(f.ID))
			updated, procErr := c.processFilter(filterCtx, f, patchCache)

			mu.Lock()
			defer mu.Unlock()
			if procErr != nil {
				result.Errors[f.ID] = procErr
				recorder.IncFiltersFailed(1)
			} else if updated {
				result.Updated = append(result.Updated, f.ID)
				recorder.IncFiltersUpdated(1)
			} else {
				result.Unchanged = append(result.Unchanged, f.ID)
			}
			return nil // per-filter errors never abort the cycle (spec §7)
		})
	}

	// errgroup's own error channel is unused deliberately: failures are
	// captured per-filter into result.Errors above, not propagated.
	_ = group.Wait()

	recorder.ObserveCycleDuration(time.Since(start))
	log.Info().
		Int("updated", len(result.Updated)).
		Int("unchanged", len(result.Unchanged)).
		Int("failed", len(result.Errors)).
		Msg("update cycle complete")

	return result, nil
}

// isStale reports whether f needs refreshing (spec §4.12): enabled, expired
// by the wall clock, and — for custom filters — only if its URL uses a web
// scheme (custom filters with no download URL are never auto-refreshed).
func isStale(f entity.Filter, now time.Time) bool {
	if !f.IsEnabled {
		return false
	}
	if f.ID.IsCustom() {
		if !fetch.ClassifyScheme(f.DownloadURL).IsWebScheme() {
			return false
		}
	}
	expires := time.Duration(f.ExpiresSeconds) * time.Second
	return now.Sub(f.TimeUpdated) >= expires
}

func (c *Coordinator) processFilter(ctx context.Context, f entity.Filter, patchCache *fetch.PatchCache) (updated bool, err error) {
	log := logging.FromContext(ctx)

	body, usedDiff, err := c.fetchBody(ctx, f, patchCache)
	if err != nil {
		return false, err
	}

	normalized, err := fetch.NormalizeURL(f.DownloadURL)
	if err != nil {
		return false, err
	}

	resolved, err := filterlist.ResolveDirectives(ctx, normalized, body, c.Constants, c.fetchInclude(ctx))
	if err != nil {
		return false, err
	}

	cur := filterlist.NewCursor(normalized, joinLines(resolved))
	header, err := filterlist.ParseHeader(cur)
	if err != nil {
		return false, err
	}

	var rules []string
	for {
		line, ok := cur.NextLine()
		if !ok {
			break
		}
		if filterlist.IsRule(line) {
			rules = append(rules, line)
		}
	}

	if header.Version != "" && header.Version == f.Version {
		log.Debug().Str("version", f.Version).Msg("filter version unchanged")
		return false, nil
	}

	return true, c.commit(ctx, f, header, rules, usedDiff)
}

func (c *Coordinator) fetchBody(ctx context.Context, f entity.Filter, patchCache *fetch.PatchCache) (body string, usedDiff bool, err error) {
	if f.DiffPath != "" && f.Checksum != "" {
		patchBody, ok := patchCache.GetCopy(f.DiffPath)
		if !ok {
			patchBody, err = c.Fetcher.Fetch(ctx, f.DiffPath, c.Timeout)
			if err == nil {
				patchCache.Insert(f.DiffPath, patchBody)
			}
		}

		if err == nil {
			if newBody, diffErr := c.applyDiff(ctx, f, patchBody); diffErr == nil {
				return newBody, true, nil
			} else {
				logging.FromContext(ctx).Warn().Err(diffErr).Msg("diff update failed, falling back to full fetch")
			}
		}
	}

	full, err := c.Fetcher.Fetch(ctx, f.DownloadURL, c.Timeout)
	if err != nil {
		return "", false, err
	}
	return full, false, nil
}

// applyDiff reconstructs the patch's pre-image from the last stored rule
// body and applies the matching hunk. A checksum mismatch (stale cache,
// concurrent edit, or a pre-image that was never a raw fetch) surfaces as
// filterlist.ErrDiffChecksumMismatch, which the caller treats as "fall back
// to full fetch" rather than a hard failure (spec §4.12).
func (c *Coordinator) applyDiff(ctx context.Context, f entity.Filter, patchBody string) (string, error) {
	current, err := c.Rules.SelectRawByFilterID(ctx, f.ID)
	if err != nil {
		return "", err
	}
	if current == nil {
		return "", filterlist.ErrDiffBlockNotFound
	}

	blocks, err := filterlist.ParsePatch(patchBody)
	if err != nil {
		return "", err
	}
	block, err := filterlist.SelectBlock(blocks, f.Title, f.DownloadURL)
	if err != nil {
		return "", err
	}
	return filterlist.ApplyDiff(current.RulesText, f.Checksum, block)
}

func (c *Coordinator) fetchInclude(ctx context.Context) filterlist.FetchFunc {
	return func(ctx context.Context, url string) (string, error) {
		return c.Fetcher.Fetch(ctx, url, c.Timeout)
	}
}

func (c *Coordinator) commit(ctx context.Context, f entity.Filter, header filterlist.Header, rules []string, usedDiff bool) error {
	return c.TxManager.ExecuteDB(ctx, func(ctx context.Context, tx *sql.Tx) error {
		filterRepo, rulesRepo, flagsRepo := c.NewRepos(tx)

		flags, err := flagsRepo.SelectByFilterID(ctx, f.ID)
		if err != nil {
			return err
		}

		next := f
		if header.Title != "" && (flags == nil || !flags.IsUserTitle) {
			next.Title = header.Title
		}
		if header.Description != "" && (flags == nil || !flags.IsUserDescription) {
			next.Description = header.Description
		}
		if header.Version != "" {
			next.Version = header.Version
		}
		if !header.TimeUpdated.IsZero() {
			next.TimeUpdated = header.TimeUpdated
		} else {
			next.TimeUpdated = time.Now().UTC()
		}
		if header.Checksum != "" {
			next.Checksum = header.Checksum
		} else {
			next.Checksum = filterlist.MD5Hex(joinLines(rules))
		}

		if err := filterRepo.Upsert(ctx, next); err != nil {
			return err
		}

		existing, err := rulesRepo.SelectByFilterID(ctx, f.ID)
		if err != nil {
			return err
		}
		disabled := ""
		if existing != nil {
			disabled = existing.DisabledText
		}

		rl := entity.RulesList{FilterID: f.ID, RulesText: joinLines(rules), DisabledText: disabled}

		logging.FromContext(ctx).Info().
			Int64("filter_id", int64(f.ID)).
			Str("version", next.Version).
			Bool("used_diff", usedDiff).
			Msg("filter updated")

		return rulesRepo.Upsert(ctx, rl)
	})
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
