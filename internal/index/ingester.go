package index

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/logging"
)

// Repositories bundles every repository Ingest needs, all bound to the same
// transaction by the caller (spec §4.8: "the entire ingestion runs in one
// transaction").
type Repositories struct {
	Groups              repository.FilterGroupRepository
	Tags                repository.FilterTagRepository
	Filters             repository.FilterRepository
	Locales             repository.FilterLocaleRepository
	GroupLocalisations  repository.FilterGroupLocalisationRepository
	TagLocalisations    repository.FilterTagLocalisationRepository
	FilterLocalisations repository.FilterLocalisationRepository
	Rules               repository.RulesListRepository
	InnerFlags          repository.FilterInnerFlagsRepository
}

// Ingest reconciles idx and i18n into storage per the rules in spec §4.8:
// upsert-by-id for groups/tags/filters, full replace of tag/locale links,
// preserved user state (is_enabled, is_trusted, FilterInnerFlags, RulesList,
// and title when IsUserTitle is set). Groups and tags absent from idx are
// deleted on the ingestion that no longer lists them; filters are not —
// spec §3 Lifecycle gives filters a two-consecutive-ingestion debounce, so
// ingestFilters only marks a miss and repository.FilterRepository.DeleteAbsent
// deletes once a filter has missed twice in a row (see repo_filter.go).
func Ingest(ctx context.Context, repos Repositories, idx Index, i18n IndexI18N) error {
	log := logging.FromContext(ctx)

	if err := ingestGroups(ctx, repos, idx.Groups, i18n.Groups); err != nil {
		return err
	}
	if err := ingestTags(ctx, repos, idx.Tags, i18n.Tags); err != nil {
		return err
	}
	if err := ingestFilters(ctx, repos, idx.Filters, i18n.Filters); err != nil {
		return err
	}

	log.Info().
		Int("groups", len(idx.Groups)).
		Int("tags", len(idx.Tags)).
		Int("filters", len(idx.Filters)).
		Msg("index ingested")
	return nil
}

func ingestGroups(ctx context.Context, repos Repositories, groups []GroupEntry, i18n map[string]map[string]LanguageMeta) error {
	entities := make([]entity.FilterGroup, len(groups))
	keepIDs := make([]entity.GroupID, len(groups))
	for i, g := range groups {
		entities[i] = entity.FilterGroup{ID: entity.GroupID(g.GroupID), Name: g.GroupName, DisplayNumber: g.DisplayNumber}
		keepIDs[i] = entity.GroupID(g.GroupID)
	}

	if err := repos.Groups.UpsertMany(ctx, entities); err != nil {
		return fmt.Errorf("index: upsert groups: %w", err)
	}
	if err := repos.Groups.DeleteAbsent(ctx, keepIDs); err != nil {
		return fmt.Errorf("index: delete absent groups: %w", err)
	}

	var rows []entity.FilterGroupLocalisation
	for idStr, byLang := range i18n {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		for lang, meta := range byLang {
			rows = append(rows, entity.FilterGroupLocalisation{GroupID: entity.GroupID(id), Lang: lang, Name: meta.Name})
		}
	}
	if err := repos.GroupLocalisations.UpsertMany(ctx, rows); err != nil {
		return fmt.Errorf("index: upsert group localisations: %w", err)
	}
	return nil
}

func ingestTags(ctx context.Context, repos Repositories, tags []TagEntry, i18n map[string]map[string]LanguageMeta) error {
	entities := make([]entity.FilterTag, len(tags))
	keepIDs := make([]entity.TagID, len(tags))
	for i, t := range tags {
		entities[i] = entity.FilterTag{ID: entity.TagID(t.TagID), Keyword: t.Keyword}
		keepIDs[i] = entity.TagID(t.TagID)
	}

	if err := repos.Tags.UpsertMany(ctx, entities); err != nil {
		return fmt.Errorf("index: upsert tags: %w", err)
	}
	if err := repos.Tags.DeleteAbsent(ctx, keepIDs); err != nil {
		return fmt.Errorf("index: delete absent tags: %w", err)
	}

	var rows []entity.FilterTagLocalisation
	for idStr, byLang := range i18n {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		for lang, meta := range byLang {
			rows = append(rows, entity.FilterTagLocalisation{TagID: entity.TagID(id), Lang: lang, Name: meta.Name, Description: meta.Description})
		}
	}
	if err := repos.TagLocalisations.UpsertMany(ctx, rows); err != nil {
		return fmt.Errorf("index: upsert tag localisations: %w", err)
	}
	return nil
}

func ingestFilters(ctx context.Context, repos Repositories, filters []FilterEntry, i18n map[string]map[string]LanguageMeta) error {
	keepIDs := make([]entity.FilterID, len(filters))

	for i, fe := range filters {
		id := entity.FilterID(fe.FilterID)
		keepIDs[i] = id

		existing, err := repos.Filters.SelectByID(ctx, id)
		if err != nil {
			return fmt.Errorf("index: read existing filter %d: %w", id, err)
		}

		flags, err := repos.InnerFlags.SelectByFilterID(ctx, id)
		if err != nil {
			return fmt.Errorf("index: read inner flags for filter %d: %w", id, err)
		}

		f := entity.Filter{
			ID:              id,
			GroupID:         entity.GroupID(fe.GroupID),
			Title:           fe.Name,
			Description:     fe.Description,
			HomepageURL:     fe.HomepageURL,
			LicenseURL:      fe.LicenseURL,
			DownloadURL:     fe.DownloadURL,
			SubscriptionURL: fe.SubscriptionURL,
			Version:         fe.Version,
			ExpiresSeconds:  fe.ExpiresSeconds,
			DiffPath:        fe.DiffPath,
			IsTrusted:       fe.Trusted,
			IsEnabled:       true,
		}
		if t, err := time.Parse(time.RFC3339, fe.TimeUpdated); err == nil {
			f.TimeUpdated = t
		}

		// Preserve user state across re-ingestion (spec §4.8).
		if existing != nil {
			f.IsEnabled = existing.IsEnabled
			f.IsTrusted = existing.IsTrusted
			f.Checksum = existing.Checksum
		}
		if flags != nil && flags.IsUserTitle {
			f.Title = existing.Title
		}

		if err := repos.Filters.Upsert(ctx, f); err != nil {
			return fmt.Errorf("index: upsert filter %d: %w", id, err)
		}

		tagIDs := make([]entity.TagID, len(fe.TagIDs))
		for i, t := range fe.TagIDs {
			tagIDs[i] = entity.TagID(t)
		}
		if err := repos.Tags.ReplaceFilterLinks(ctx, id, tagIDs); err != nil {
			return fmt.Errorf("index: replace tag links for filter %d: %w", id, err)
		}
		if err := repos.Locales.ReplaceFilterLinks(ctx, id, fe.Languages); err != nil {
			return fmt.Errorf("index: replace locale links for filter %d: %w", id, err)
		}
	}

	if err := repos.Filters.DeleteAbsent(ctx, keepIDs); err != nil {
		return fmt.Errorf("index: delete absent filters: %w", err)
	}

	var rows []entity.FilterLocalisation
	for idStr, byLang := range i18n {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		for lang, meta := range byLang {
			rows = append(rows, entity.FilterLocalisation{FilterID: entity.FilterID(id), Lang: lang, Name: meta.Name, Description: meta.Description})
		}
	}
	if err := repos.FilterLocalisations.UpsertMany(ctx, rows); err != nil {
		return fmt.Errorf("index: upsert filter localisations: %w", err)
	}
	return nil
}
