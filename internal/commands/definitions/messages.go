package definitionscmd

import (
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const syncDefinitionsMessageType = "addressformat.definitions.sync"

// SyncDefinitionsCommand copies raw definitions into the writable store.
type SyncDefinitionsCommand struct {
	// Directory reads definitions from a directory of <code>.json files
	// instead of the handler's default source.
	Directory string `json:"directory,omitempty"`
	// SkipSchemaValidation decodes directory documents without the JSON schema check.
	SkipSchemaValidation bool `json:"skip_schema_validation,omitempty"`
	// ResultCallback receives the sync report.
	ResultCallback func(SyncResult) `json:"-"`
}

// Type implements command.Message.
func (SyncDefinitionsCommand) Type() string { return syncDefinitionsMessageType }

// Validate ensures a provided directory exists.
func (m SyncDefinitionsCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Directory, validation.By(func(value any) error {
			dir, _ := value.(string)
			if dir == "" {
				return nil
			}
			if strings.TrimSpace(dir) == "" {
				return validation.NewError("addressformat.definitions.sync.directory_blank", "directory must not be blank")
			}
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return validation.NewError("addressformat.definitions.sync.directory_missing", "directory must exist")
			}
			return nil
		})),
	)
}

// SyncResult summarises a sync run.
type SyncResult struct {
	Copied  []string
	Missing []string
	Failed  []string
}
