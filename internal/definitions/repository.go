package definitions

import (
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefinitionRecord is the database row holding one encoded definition.
type DefinitionRecord struct {
	bun.BaseModel `bun:"table:address_format_definitions,alias:afd"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CountryCode string    `bun:"country_code,notnull,unique" json:"country_code"`
	Document    string    `bun:"document,notnull" json:"document"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NewDefinitionRepository creates a go-repository-bun repository for
// definition rows, identified by country code.
func NewDefinitionRepository(db *bun.DB) repository.Repository[*DefinitionRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*DefinitionRecord]{
		NewRecord: func() *DefinitionRecord { return &DefinitionRecord{} },
		GetID: func(record *DefinitionRecord) uuid.UUID {
			return record.ID
		},
		SetID: func(record *DefinitionRecord, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "country_code"
		},
		GetIdentifierValue: func(record *DefinitionRecord) string {
			return record.CountryCode
		},
	})
}
