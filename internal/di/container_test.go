package di_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-command/dispatcher"

	definitionscmd "github.com/goliatone/go-addressformat/internal/commands/definitions"
	"github.com/goliatone/go-addressformat/internal/commands/fixtures"
	formatscmd "github.com/goliatone/go-addressformat/internal/commands/formats"
	"github.com/goliatone/go-addressformat/internal/definitions"
	"github.com/goliatone/go-addressformat/internal/di"
	"github.com/goliatone/go-addressformat/internal/runtimeconfig"
	"github.com/goliatone/go-addressformat/pkg/testsupport"
)

func TestContainerDefaultsToEmbeddedDefinitions(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	format, err := container.FormatsService().Get(context.Background(), "US", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if format.AdministrativeAreaType != definitions.AdministrativeAreaState {
		t.Fatalf("expected state, got %q", format.AdministrativeAreaType)
	}
	if container.Writer() != nil {
		t.Fatal("embedded definitions should not be writable")
	}
	if container.FormatCommands() != nil {
		t.Fatal("commands should be disabled by default")
	}
	if container.LoggerProvider() != nil {
		t.Fatal("logger should be disabled by default")
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Source.Provider = "ftp"

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrSourceProviderUnknown) {
		t.Fatalf("expected ErrSourceProviderUnknown, got %v", err)
	}
}

func TestContainerDirectorySource(t *testing.T) {
	dir := t.TempDir()
	write := func(name, doc string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("ZZ.json", `{"format":"%address","required_fields":["address"],"uppercase_fields":[],"administrative_area_type":"area","postal_code_type":"postal"}`)
	write("NZ.json", `{"format":"%address\n%locality %postal_code","required_fields":["address","locality"],"uppercase_fields":[],"administrative_area_type":"area","postal_code_type":"postal","postal_code_pattern":"\\d{4}"}`)

	cfg := runtimeconfig.DefaultConfig()
	cfg.Source.Provider = runtimeconfig.SourceDirectory
	cfg.Source.Path = dir

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	all, err := container.FormatsService().GetAll(context.Background(), "")
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 || all["NZ"].Pattern() != `\d{4}` {
		t.Fatalf("unexpected formats %+v", all)
	}
}

func TestContainerUsesCustomDefaultCountryCode(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultCountryCode = "US"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	format, err := container.FormatsService().Get(context.Background(), "XK", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if format.CountryCode != "US" {
		t.Fatalf("expected US fallback, got %q", format.CountryCode)
	}
}

func TestContainerBunSourceWithSyncCommand(t *testing.T) {
	ctx := context.Background()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Source.Provider = runtimeconfig.SourceBun
	cfg.Source.Driver = runtimeconfig.DriverSQLite
	cfg.Source.DSN = "file:di_container_bun?mode=memory&cache=shared"
	cfg.Source.AutoMigrate = true
	cfg.Cache.Enabled = true
	cfg.Features.Commands = true

	reg := fixtures.NewRecordingRegistry()
	container, err := di.NewContainer(cfg, di.WithCommandRegistry(reg))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.BunDB() == nil || container.Writer() == nil {
		t.Fatal("expected bun database and writer")
	}
	if len(reg.Handlers) != 3 {
		t.Fatalf("expected 3 registered handlers, got %d", len(reg.Handlers))
	}

	var result definitionscmd.SyncResult
	err = container.DefinitionCommands().Sync.Execute(ctx, definitionscmd.SyncDefinitionsCommand{
		ResultCallback: func(r definitionscmd.SyncResult) { result = r },
	})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(result.Copied) == 0 {
		t.Fatal("expected definitions to be copied")
	}

	format, err := container.FormatsService().Get(ctx, "JP", "en")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if format.AdministrativeAreaType != definitions.AdministrativeAreaPrefecture {
		t.Fatalf("expected prefecture, got %q", format.AdministrativeAreaType)
	}
	if format.LocaleTag() != "en" {
		t.Fatalf("expected en translation, got %q", format.LocaleTag())
	}
}

func TestContainerUsesProvidedBunDB(t *testing.T) {
	db, err := testsupport.NewBunSQLiteDB("di_container_provided")
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := definitions.CreateSchema(context.Background(), db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	seed := definitions.NewBunSource(db)
	if err := seed.Store(context.Background(), &definitions.RawDefinition{
		CountryCode:            "ZZ",
		Format:                 definitions.String("%address"),
		RequiredFields:         []string{"address"},
		UppercaseFields:        []string{},
		AdministrativeAreaType: definitions.Some(definitions.AdministrativeAreaArea),
		PostalCodeType:         definitions.Some(definitions.PostalCodePostal),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Source.Provider = runtimeconfig.SourceBun
	cfg.Source.DSN = "unused"
	cfg.Features.Preload = true

	container, err := di.NewContainer(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if err := container.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("expected provided database to stay open: %v", err)
	}
}

func TestContainerDispatchSubscriptions(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Commands = true
	cfg.Commands.Dispatch = true

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	var out bytes.Buffer
	if err := dispatcher.Dispatch(context.Background(), formatscmd.ExportFormatsCommand{Output: &out}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if out.Len() == 0 {
		t.Fatal("expected export output")
	}

	err = dispatcher.Dispatch(context.Background(), definitionscmd.SyncDefinitionsCommand{})
	if !errors.Is(err, definitionscmd.ErrSyncTargetRequired) {
		t.Fatalf("expected missing target error for read only source, got %v", err)
	}
}

func TestContainerPreloadFailure(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Preload = true

	_, err := di.NewContainer(cfg, di.WithSource(failingSource{}))
	if err == nil {
		t.Fatal("expected preload error")
	}
}

type failingSource struct{}

func (failingSource) ListCountryCodes(context.Context) ([]string, error) {
	return nil, errors.New("unreachable")
}

func (failingSource) Fetch(_ context.Context, code string) (*definitions.RawDefinition, error) {
	return nil, &definitions.NotFoundError{CountryCode: code}
}
