package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-addressformat/internal/commands"
	definitionscmd "github.com/goliatone/go-addressformat/internal/commands/definitions"
	formatscmd "github.com/goliatone/go-addressformat/internal/commands/formats"
	"github.com/goliatone/go-addressformat/internal/definitions"
	"github.com/goliatone/go-addressformat/internal/formats"
	"github.com/goliatone/go-addressformat/internal/logging"
	"github.com/goliatone/go-addressformat/internal/logging/console"
	"github.com/goliatone/go-addressformat/internal/logging/gologger"
	"github.com/goliatone/go-addressformat/internal/runtimeconfig"
	"github.com/goliatone/go-addressformat/pkg/interfaces"
)

// CommandRegistry receives every command handler the container builds.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Subscription is a dispatcher registration released by Close.
type Subscription interface {
	Unsubscribe()
}

// Container wires the address format module from a runtime config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB  *bun.DB
	ownsDB bool

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	source definitions.Source
	writer definitions.Writer

	formatsSvc formats.Service

	commandRegistry    CommandRegistry
	formatHandlers     *formatscmd.HandlerSet
	definitionHandlers *definitionscmd.HandlerSet
	subscriptions      []Subscription
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB supplies the database used by the bun source. The container does
// not close databases it did not open.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		if db != nil {
			c.bunDB = db
		}
	}
}

// WithCache overrides the repository cache used by the bun source.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithSource replaces the configured definition source.
func WithSource(source definitions.Source) Option {
	return func(c *Container) {
		if source != nil {
			c.source = source
		}
	}
}

// WithFormatsService replaces the lookup service.
func WithFormatsService(svc formats.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.formatsSvc = svc
		}
	}
}

// WithCommandRegistry registers built command handlers with reg.
func WithCommandRegistry(reg CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// NewContainer validates cfg and builds every configured service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	if c.cacheTTL <= 0 {
		c.cacheTTL = time.Minute
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "")

	if err := c.configureSource(); err != nil {
		_ = c.Close()
		return nil, err
	}

	if c.formatsSvc == nil {
		c.formatsSvc = formats.NewService(c.source,
			formats.WithLogger(logging.FormatsLogger(c.loggerProvider)),
			formats.WithDefaultCountryCode(cfg.DefaultCountryCode),
		)
	}

	if cfg.Features.Preload {
		count, err := c.formatsSvc.Preload(context.Background())
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("addressformat: preload definitions: %w", err)
		}
		c.logger.Info("addressformat.preloaded", "countries", count)
	}

	if cfg.Features.Commands {
		if err := c.configureCommands(); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.logger.Debug("addressformat.container.ready", "source", cfg.SourceProvider())
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureSource() error {
	schema := definitions.WithSchemaValidation(c.Config.Features.SchemaValidation)

	switch c.Config.SourceProvider() {
	case runtimeconfig.SourceBun:
		if err := c.configureBun(schema); err != nil {
			return err
		}
	case runtimeconfig.SourceDirectory:
		if c.source == nil {
			c.source = definitions.NewDirectorySource(c.Config.Source.Path, schema)
		}
	default:
		if c.source == nil {
			c.source = definitions.Embedded(schema)
		}
	}

	if c.writer == nil {
		if writer, ok := c.source.(definitions.Writer); ok {
			c.writer = writer
		}
	}
	return nil
}

func (c *Container) configureBun(schema definitions.CodecOption) error {
	if c.bunDB == nil {
		db, err := openDB(c.Config.Source.Driver, c.Config.Source.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	if c.Config.Source.AutoMigrate {
		if err := definitions.CreateSchema(context.Background(), c.bunDB); err != nil {
			return err
		}
	}

	c.configureCacheDefaults()

	bunSource := definitions.NewBunSourceWithCache(c.bunDB, c.cacheService, c.keySerializer, schema)
	c.writer = bunSource
	if c.source == nil {
		c.source = bunSource
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger.Warn("addressformat.cache.disabled", "error", err)
			return
		}
		c.cacheService = service
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureCommands() error {
	formatSet, err := formatscmd.RegisterFormatsCommands(c.commandRegistry, c.formatsSvc, c.loggerProvider,
		formatscmd.WithExportHandlerOptions(commands.WithTimeout[formatscmd.ExportFormatsCommand](c.commandTimeout())),
		formatscmd.WithWarmHandlerOptions(commands.WithTimeout[formatscmd.WarmFormatsCommand](c.commandTimeout())),
	)
	if err != nil {
		return err
	}
	c.formatHandlers = formatSet

	var source definitions.Source = c.source
	if c.Config.SourceProvider() == runtimeconfig.SourceBun {
		// The bun store syncs from the bundled definitions by default.
		source = definitions.Embedded(definitions.WithSchemaValidation(c.Config.Features.SchemaValidation))
	}
	definitionSet, err := definitionscmd.RegisterDefinitionsCommands(c.commandRegistry, source, c.writer, c.loggerProvider,
		commands.WithTimeout[definitionscmd.SyncDefinitionsCommand](c.commandTimeout()),
	)
	if err != nil {
		return err
	}
	c.definitionHandlers = definitionSet

	if c.Config.Commands.Dispatch {
		c.subscriptions = append(c.subscriptions,
			dispatcher.SubscribeCommand(formatSet.Export),
			dispatcher.SubscribeCommand(formatSet.Warm),
			dispatcher.SubscribeCommand(definitionSet.Sync),
		)
	}
	return nil
}

func (c *Container) commandTimeout() time.Duration {
	if c.Config.Commands.Timeout > 0 {
		return c.Config.Commands.Timeout
	}
	return commands.DefaultCommandTimeout
}

// Close releases dispatcher subscriptions and databases opened by the container.
func (c *Container) Close() error {
	for _, sub := range c.subscriptions {
		sub.Unsubscribe()
	}
	c.subscriptions = nil

	if c.ownsDB && c.bunDB != nil {
		err := c.bunDB.Close()
		c.bunDB = nil
		c.ownsDB = false
		return err
	}
	return nil
}

// FormatsService returns the lookup service.
func (c *Container) FormatsService() formats.Service {
	return c.formatsSvc
}

// Source returns the definition source backing the lookup service.
func (c *Container) Source() definitions.Source {
	return c.source
}

// Writer returns the writable definition store, or nil when the source is read only.
func (c *Container) Writer() definitions.Writer {
	return c.writer
}

// BunDB returns the database used by the bun source, if any.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// LoggerProvider returns the active logger provider, or nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// FormatCommands returns the format command handlers when commands are enabled.
func (c *Container) FormatCommands() *formatscmd.HandlerSet {
	return c.formatHandlers
}

// DefinitionCommands returns the definition command handlers when commands are enabled.
func (c *Container) DefinitionCommands() *definitionscmd.HandlerSet {
	return c.definitionHandlers
}

var errUnsupportedDriver = errors.New("addressformat: unsupported database driver")

func openDB(driver, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case runtimeconfig.DriverPostgres:
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("addressformat: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case runtimeconfig.DriverSQLite, "":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("addressformat: open sqlite: %w", err)
		}
		if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
			sqlDB.SetMaxOpenConns(1)
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedDriver, driver)
	}
}
