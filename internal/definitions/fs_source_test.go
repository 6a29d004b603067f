package definitions

import (
	"context"
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"testing/fstest"
)

func newMapSource() *FSSource {
	fsys := fstest.MapFS{
		"defs/US.json":        {Data: []byte(`{"format":"%address","required_fields":["address"],"uppercase_fields":[],"administrative_area_type":"state","postal_code_type":"zip"}`)},
		"defs/XX.json":        {Data: []byte("  \n")},
		"defs/BAD.json":       {Data: []byte(`{"format":`)},
		"defs/.hidden.json":   {Data: []byte(`{}`)},
		"defs/README.md":      {Data: []byte("docs")},
		"defs/nested/CA.json": {Data: []byte(`{}`)},
	}
	return NewFSSource(fsys, "/defs/")
}

func TestFSSourceListCountryCodes(t *testing.T) {
	codes, err := newMapSource().ListCountryCodes(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"BAD", "US", "XX"}
	if !reflect.DeepEqual(codes, want) {
		t.Fatalf("expected %v, got %v", want, codes)
	}
}

func TestFSSourceFetch(t *testing.T) {
	src := newMapSource()
	ctx := context.Background()

	t.Run("sets country code from file name", func(t *testing.T) {
		definition, err := src.Fetch(ctx, "US")
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if definition.CountryCode != "US" {
			t.Fatalf("expected US, got %q", definition.CountryCode)
		}
		if got, _ := definition.AdministrativeAreaType.Get(); got != AdministrativeAreaState {
			t.Fatalf("expected state, got %q", got)
		}
	})

	t.Run("missing file is not found", func(t *testing.T) {
		if _, err := src.Fetch(ctx, "FR"); !IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("blank file is not found", func(t *testing.T) {
		if _, err := src.Fetch(ctx, "XX"); !IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("malformed file is reported", func(t *testing.T) {
		_, err := src.Fetch(ctx, "BAD")
		if !IsMalformed(err) {
			t.Fatalf("expected malformed error, got %v", err)
		}
		if IsNotFound(err) {
			t.Fatal("malformed must not look like not found")
		}
	})

	t.Run("path like codes are not found", func(t *testing.T) {
		for _, code := range []string{"", "../US", "nested/CA", ".hidden", "US.json"} {
			if _, err := src.Fetch(ctx, code); !IsNotFound(err) {
				t.Fatalf("code %q: expected not found, got %v", code, err)
			}
		}
	})
}

type failingFS struct{}

func (failingFS) Open(string) (fs.File, error) { return nil, fs.ErrPermission }

func TestFSSourceReadFailureIsNotNotFound(t *testing.T) {
	src := NewFSSource(failingFS{}, ".")
	_, err := src.Fetch(context.Background(), "US")
	if err == nil || IsNotFound(err) || IsMalformed(err) {
		t.Fatalf("expected plain read error, got %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected permission error to be wrapped, got %v", err)
	}
}

func TestEmbeddedDefinitionsDecode(t *testing.T) {
	src := Embedded()
	ctx := context.Background()

	codes, err := src.ListCountryCodes(ctx)
	if err != nil {
		t.Fatalf("list embedded: %v", err)
	}
	if len(codes) == 0 {
		t.Fatal("expected embedded definitions")
	}

	seenDefault := false
	for _, code := range codes {
		definition, err := src.Fetch(ctx, code)
		if err != nil {
			t.Fatalf("fetch %s: %v", code, err)
		}
		if definition.Format == nil || definition.RequiredFields == nil || definition.UppercaseFields == nil {
			t.Fatalf("%s: expected mandatory members, got %+v", code, definition)
		}
		if code == DefaultCountryCode {
			seenDefault = true
		}
	}
	if !seenDefault {
		t.Fatalf("expected %s among %v", DefaultCountryCode, codes)
	}
}

func TestDirectorySourceReadsDisk(t *testing.T) {
	src := NewDirectorySource("resources")
	definition, err := src.Fetch(context.Background(), "CA")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, ok := definition.Translations["fr"]; !ok {
		t.Fatalf("expected fr translation, got %v", definition.Locales())
	}
}
