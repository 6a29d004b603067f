package definitionscmd

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-addressformat/internal/definitions"
	"github.com/goliatone/go-addressformat/pkg/testsupport"
)

func TestSyncDefinitionsHandlerCopiesDefaultSource(t *testing.T) {
	ctx := context.Background()
	target := definitions.NewMemorySource()
	handler := NewSyncDefinitionsHandler(definitions.Embedded(), target, nil)

	var result SyncResult
	err := handler.Execute(ctx, SyncDefinitionsCommand{
		ResultCallback: func(r SyncResult) { result = r },
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	want, _ := definitions.Embedded().ListCountryCodes(ctx)
	got, _ := target.ListCountryCodes(ctx)
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(result.Copied) != len(want) || len(result.Failed) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSyncDefinitionsHandlerIntoBun(t *testing.T) {
	ctx := context.Background()
	db, err := testsupport.NewBunSQLiteDB("definitionscmd_sync")
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := definitions.CreateSchema(ctx, db); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	dir := t.TempDir()
	doc := `{"format":"%address\n%locality","required_fields":["address"],"uppercase_fields":[],"administrative_area_type":"island","postal_code_type":"postal"}`
	if err := os.WriteFile(filepath.Join(dir, "IS.json"), []byte(doc), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	target := definitions.NewBunSource(db)
	handler := NewSyncDefinitionsHandler(nil, target, nil)
	if err := handler.Execute(ctx, SyncDefinitionsCommand{Directory: dir}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	stored, err := target.Fetch(ctx, "IS")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got, _ := stored.AdministrativeAreaType.Get(); got != definitions.AdministrativeAreaIsland {
		t.Fatalf("expected island, got %q", got)
	}
}

func TestSyncDefinitionsHandlerReportsFailures(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "XX.json"), []byte(`{"format": 1}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var result SyncResult
	handler := NewSyncDefinitionsHandler(nil, definitions.NewMemorySource(), nil)
	err := handler.Execute(context.Background(), SyncDefinitionsCommand{
		Directory:      dir,
		ResultCallback: func(r SyncResult) { result = r },
	})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !reflect.DeepEqual(result.Failed, []string{"XX"}) {
		t.Fatalf("expected XX to fail, got %+v", result)
	}
}

func TestSyncDefinitionsValidation(t *testing.T) {
	handler := NewSyncDefinitionsHandler(definitions.Embedded(), definitions.NewMemorySource(), nil)
	err := handler.Execute(context.Background(), SyncDefinitionsCommand{Directory: filepath.Join(t.TempDir(), "missing")})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSyncDefinitionsRequiresTarget(t *testing.T) {
	handler := NewSyncDefinitionsHandler(definitions.Embedded(), nil, nil)
	err := handler.Execute(context.Background(), SyncDefinitionsCommand{})
	if err == nil {
		t.Fatal("expected missing target error")
	}
}
