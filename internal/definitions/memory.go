package definitions

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MemorySource keeps definitions in process memory. It satisfies both Source
// and Writer and is mostly used by tests and by hosts that build definitions
// in code.
type MemorySource struct {
	mu          sync.RWMutex
	definitions map[string]*RawDefinition
}

var (
	_ Source = (*MemorySource)(nil)
	_ Writer = (*MemorySource)(nil)
)

// NewMemorySource returns a source seeded with the provided definitions.
func NewMemorySource(seed ...*RawDefinition) *MemorySource {
	src := &MemorySource{definitions: make(map[string]*RawDefinition, len(seed))}
	for _, definition := range seed {
		if definition == nil || strings.TrimSpace(definition.CountryCode) == "" {
			continue
		}
		src.definitions[definition.CountryCode] = definition.Clone()
	}
	return src
}

func (m *MemorySource) ListCountryCodes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.definitions)), nil
}

func (m *MemorySource) Fetch(ctx context.Context, countryCode string) (*RawDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	definition, ok := m.definitions[countryCode]
	if !ok {
		return nil, &NotFoundError{CountryCode: countryCode}
	}
	return definition.Clone(), nil
}

func (m *MemorySource) Store(ctx context.Context, definition *RawDefinition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if definition == nil || strings.TrimSpace(definition.CountryCode) == "" {
		return ErrInvalidCountryCode
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.definitions[definition.CountryCode] = definition.Clone()
	return nil
}

// Delete removes the definition for countryCode.
func (m *MemorySource) Delete(ctx context.Context, countryCode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.definitions[countryCode]; !ok {
		return &NotFoundError{CountryCode: countryCode}
	}
	delete(m.definitions, countryCode)
	return nil
}
