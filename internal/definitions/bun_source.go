package definitions

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-addressformat/internal/identity"
)

// BunSource stores encoded definitions in a SQL table through bun. Reads can
// optionally go through a go-repository-cache layer.
type BunSource struct {
	repo  repository.Repository[*DefinitionRecord]
	codec []CodecOption
	now   func() time.Time
}

var (
	_ Source = (*BunSource)(nil)
	_ Writer = (*BunSource)(nil)
)

// NewBunSource creates a bun-backed source without caching.
func NewBunSource(db *bun.DB, opts ...CodecOption) *BunSource {
	return NewBunSourceWithCache(db, nil, nil, opts...)
}

// NewBunSourceWithCache creates a bun-backed source whose repository reads
// are cached when both cacheService and serializer are provided.
func NewBunSourceWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer, opts ...CodecOption) *BunSource {
	base := NewDefinitionRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunSource{repo: base, codec: opts, now: time.Now}
}

// CreateSchema creates the definitions table when missing.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*DefinitionRecord)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("definitions: create schema: %w", err)
	}
	return nil
}

func (s *BunSource) ListCountryCodes(ctx context.Context) ([]string, error) {
	records, _, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("definitions: list records: %w", err)
	}
	codes := make([]string, 0, len(records))
	for _, record := range records {
		codes = append(codes, record.CountryCode)
	}
	slices.Sort(codes)
	return codes, nil
}

func (s *BunSource) Fetch(ctx context.Context, countryCode string) (*RawDefinition, error) {
	record, err := s.repo.GetByIdentifier(ctx, countryCode)
	if err != nil {
		return nil, mapRepositoryError(err, countryCode)
	}
	definition, err := Decode([]byte(record.Document), s.codec...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", countryCode, err)
	}
	definition.CountryCode = record.CountryCode
	return definition, nil
}

func (s *BunSource) Store(ctx context.Context, definition *RawDefinition) error {
	if definition == nil || strings.TrimSpace(definition.CountryCode) == "" {
		return ErrInvalidCountryCode
	}
	document, err := Encode(definition)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	existing, err := s.repo.GetByIdentifier(ctx, definition.CountryCode)
	if err != nil {
		if !IsNotFound(mapRepositoryError(err, definition.CountryCode)) {
			return fmt.Errorf("definitions: lookup %q: %w", definition.CountryCode, err)
		}
		_, err = s.repo.Create(ctx, &DefinitionRecord{
			ID:          identity.DefinitionUUID(definition.CountryCode),
			CountryCode: definition.CountryCode,
			Document:    string(document),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("definitions: create %q: %w", definition.CountryCode, err)
		}
		return nil
	}

	existing.Document = string(document)
	existing.UpdatedAt = now
	_, err = s.repo.Update(ctx, existing,
		repository.UpdateByID(existing.ID.String()),
		repository.UpdateColumns("document", "updated_at"),
	)
	if err != nil {
		return fmt.Errorf("definitions: update %q: %w", definition.CountryCode, err)
	}
	return nil
}

// Delete removes the stored definition for countryCode.
func (s *BunSource) Delete(ctx context.Context, countryCode string) error {
	record, err := s.repo.GetByIdentifier(ctx, countryCode)
	if err != nil {
		return mapRepositoryError(err, countryCode)
	}
	return s.repo.Delete(ctx, record)
}

func mapRepositoryError(err error, countryCode string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{CountryCode: countryCode}
	}
	return fmt.Errorf("definition repository error: %w", err)
}
