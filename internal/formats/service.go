package formats

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/goliatone/go-addressformat/internal/definitions"
	"github.com/goliatone/go-addressformat/internal/logging"
	"github.com/goliatone/go-addressformat/pkg/interfaces"
)

// Service resolves address formats by country code and locale.
type Service interface {
	// Get returns the address format for countryCode, translated to locale
	// when a translation exists. Unknown country codes silently resolve to
	// the default definition. An empty locale disables translation.
	//
	// Errors are a *DataIntegrityError for unusable definitions, or ctx.Err()
	// unchanged when ctx is already done on entry. Source read failures never
	// surface here; they fall back like missing definitions.
	Get(ctx context.Context, countryCode, locale string) (AddressFormat, error)
	// GetAll resolves every country code the source lists. It touches every
	// definition and is meant for bulk export.
	GetAll(ctx context.Context, locale string) (map[string]AddressFormat, error)
	// Preload loads every listed definition into the cache and returns the
	// number of country codes visited.
	Preload(ctx context.Context) (int, error)
}

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithLogger overrides the logger used by the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultCountryCode overrides the fallback definition code. Intended for
// tests and alternative data sets.
func WithDefaultCountryCode(code string) ServiceOption {
	return func(s *service) {
		if code != "" {
			s.defaultCode = code
		}
	}
}

type service struct {
	source      definitions.Source
	cache       *arena
	logger      interfaces.Logger
	defaultCode string
}

// NewService constructs a lookup service over source.
func NewService(source definitions.Source, opts ...ServiceOption) Service {
	if source == nil {
		panic(ErrSourceRequired)
	}
	s := &service{
		source:      source,
		cache:       newArena(),
		logger:      logging.NoOp(),
		defaultCode: definitions.DefaultCountryCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Get(ctx context.Context, countryCode, locale string) (AddressFormat, error) {
	if err := ctx.Err(); err != nil {
		return AddressFormat{}, err
	}
	logger := logging.WithLookupContext(s.logger, countryCode, locale)

	resolved := s.load(ctx, countryCode)
	if resolved.absent() && countryCode != s.defaultCode {
		logger.Debug("formats.lookup.fallback", "fallback_country_code", s.defaultCode)
		resolved = s.load(ctx, s.defaultCode)
	}
	if resolved.err != nil {
		return AddressFormat{}, s.integrityFailure(logger, &DataIntegrityError{
			CountryCode: countryCode,
			Locale:      locale,
			Cause:       resolved.err,
		})
	}
	if resolved.absent() {
		return AddressFormat{}, s.integrityFailure(logger, &DataIntegrityError{
			CountryCode: s.defaultCode,
			Locale:      locale,
			Cause:       ErrDefaultDefinitionMissing,
		})
	}

	format, err := construct(translate(resolved.definition, locale))
	if err != nil {
		var integrity *DataIntegrityError
		if !errors.As(err, &integrity) {
			integrity = &DataIntegrityError{CountryCode: resolved.definition.CountryCode, Cause: err}
		}
		if integrity.Locale == "" {
			integrity.Locale = locale
		}
		return AddressFormat{}, s.integrityFailure(logger, integrity)
	}
	return format, nil
}

func (s *service) GetAll(ctx context.Context, locale string) (map[string]AddressFormat, error) {
	codes, err := s.listCountryCodes(ctx)
	if err != nil {
		return nil, err
	}

	formats := make(map[string]AddressFormat, len(codes))
	for _, code := range codes {
		format, err := s.Get(ctx, code, locale)
		if err != nil {
			return nil, err
		}
		formats[code] = format
	}
	return formats, nil
}

func (s *service) Preload(ctx context.Context) (int, error) {
	codes, err := s.listCountryCodes(ctx)
	if err != nil {
		return 0, err
	}
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		s.load(ctx, code)
	}
	s.logger.Debug("formats.cache.preloaded", "count", len(codes), "cached", s.cache.size())
	return len(codes), nil
}

func (s *service) listCountryCodes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	codes, err := s.source.ListCountryCodes(ctx)
	if err != nil {
		s.logger.Error("formats.source.list_failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	// Duplicates from custom sources collapse into one entry.
	unique := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		unique[code] = struct{}{}
	}
	return slices.Sorted(maps.Keys(unique)), nil
}

// load returns the memoized definition for code. Unreadable sources are
// treated as missing; malformed documents are remembered as errors.
func (s *service) load(ctx context.Context, code string) entry {
	return s.cache.resolve(code, func() entry {
		logger := logging.WithLookupContext(s.logger, code, "")
		logger.Debug("formats.cache.miss")

		// Concurrent callers share this fetch.
		definition, err := s.source.Fetch(context.WithoutCancel(ctx), code)
		switch {
		case err == nil:
		case definitions.IsNotFound(err):
			return entry{}
		case definitions.IsMalformed(err):
			logger.Error("formats.source.malformed", "error", err)
			return entry{err: err}
		default:
			logger.Warn("formats.source.unavailable", "error", err)
			return entry{}
		}
		if definition.IsEmpty() {
			return entry{}
		}
		if definition.CountryCode == "" {
			definition.CountryCode = code
		}
		return entry{definition: definition}
	})
}

func (s *service) integrityFailure(logger interfaces.Logger, err *DataIntegrityError) error {
	logger.Error("formats.lookup.integrity_failed", "error", err)
	return wrapDataIntegrity(err)
}
