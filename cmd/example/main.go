package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	addressformat "github.com/goliatone/go-addressformat"
	definitionscmd "github.com/goliatone/go-addressformat/internal/commands/definitions"
	formatscmd "github.com/goliatone/go-addressformat/internal/commands/formats"
)

func main() {
	ctx := context.Background()

	cfg := addressformat.DefaultConfig()
	if len(os.Args) > 1 {
		loaded, err := addressformat.LoadConfig(os.Args[1])
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	} else {
		cfg.Source.Provider = "bun"
		cfg.Source.Driver = "sqlite"
		cfg.Source.DSN = "file:addressformat_example?mode=memory&cache=shared"
		cfg.Source.AutoMigrate = true
		cfg.Cache.Enabled = true
		cfg.Features.Logger = true
		cfg.Features.Commands = true
		cfg.Logging.Level = "warn"
	}

	module, err := addressformat.New(cfg)
	if err != nil {
		log.Fatalf("initialise address formats: %v", err)
	}
	defer module.Close()

	if cmds := module.Commands(); cmds != nil && module.Container().Writer() != nil {
		err := cmds.Sync.Execute(ctx, definitionscmd.SyncDefinitionsCommand{
			ResultCallback: func(result definitionscmd.SyncResult) {
				fmt.Printf("synced %d definitions (%d missing, %d failed)\n",
					len(result.Copied), len(result.Missing), len(result.Failed))
			},
		})
		if err != nil {
			log.Fatalf("sync definitions: %v", err)
		}
	}

	lookups := []struct {
		country string
		locale  string
	}{
		{"US", ""},
		{"CA", "fr_CA"},
		{"JP", "en"},
		{"XK", ""},
	}
	for _, lookup := range lookups {
		format, err := module.Get(ctx, lookup.country, lookup.locale)
		if err != nil {
			log.Fatalf("lookup %s: %v", lookup.country, err)
		}
		printFormat(lookup.country, format)
	}

	if cmds := module.Commands(); cmds != nil {
		if err := cmds.Warm.Execute(ctx, formatscmd.WarmFormatsCommand{}); err != nil {
			log.Fatalf("warm formats: %v", err)
		}
		if err := cmds.Export.Execute(ctx, formatscmd.ExportFormatsCommand{Locale: "en", Indent: true, Output: os.Stdout}); err != nil {
			log.Fatalf("export formats: %v", err)
		}
	}
}

func printFormat(requested string, format addressformat.AddressFormat) {
	fmt.Printf("%s -> %s", requested, format.CountryCode)
	if tag := format.LocaleTag(); tag != "" {
		fmt.Printf(" [%s]", tag)
	}
	fmt.Println()
	for _, line := range strings.Split(format.Format, "\n") {
		fmt.Printf("  %s\n", line)
	}
	fmt.Printf("  required: %s\n", strings.Join(format.RequiredFields, ", "))
	if format.AdministrativeAreaType != "" {
		fmt.Printf("  administrative area: %s\n", format.AdministrativeAreaType)
	}
	fmt.Printf("  postal code: %s", format.PostalCodeType)
	if pattern := format.Pattern(); pattern != "" {
		fmt.Printf(" /%s/", pattern)
	}
	fmt.Println()
}
