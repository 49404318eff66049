package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/cache"
	"github.com/desertthunder/mixtape/internal/repositories"
	"github.com/desertthunder/mixtape/internal/services"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/desertthunder/mixtape/internal/suggest"
	"github.com/desertthunder/mixtape/internal/tasks"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, suggestCommand, likedCommand, enrichCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reloads configuration from the command's --config flag when the
// file exists, falling back to the config the Runner was built with.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		path = r.configPath
	}
	if path == "" {
		return r.config
	}

	if _, err := os.Stat(path); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using current settings", "path", path, "error", err)
		return r.config
	}

	r.config = config
	r.configPath = path
	return config
}

// resources bundles the wired suggestion stack for one command invocation.
type resources struct {
	db     *sql.DB
	redis  *redis.Client
	pool   *tasks.RefreshPool
	engine *suggest.Engine
}

// close releases the stack in reverse dependency order. The refresh pool
// drains before the redis client and database go away.
func (res *resources) close() {
	if res.pool != nil {
		res.pool.Close()
	}
	if res.redis != nil {
		res.redis.Close()
	}
	if res.db != nil {
		res.db.Close()
	}
}

// buildResources wires the database, catalog, caches, and engine from the
// loaded configuration. Redis is optional: when unreachable the engine runs
// without the distributed likes tier.
func (r *Runner) buildResources(ctx context.Context, config *shared.Config) (*resources, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	users := repositories.NewUserRepository(db)
	songs := repositories.NewSongRepository(db)

	if config.Catalog.APIKey == "" {
		r.logger.Warn("no catalog API key configured, song resolution will fail")
	}
	catalog := services.NewYouTubeCatalog(config.Catalog)

	res := &resources{db: db}

	var likes *cache.LikesCache
	var refresher suggest.Refresher
	if config.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, config.Redis.Addr)
		if err != nil {
			r.logger.Warn("redis unavailable, continuing without distributed cache", "addr", config.Redis.Addr, "error", err)
		} else {
			res.redis = client
			likes = cache.NewLikesCache(client, config.Redis.TTL())
			res.pool = tasks.NewRefreshPool(songs, likes, config.Engine.Workers, tasks.DefaultQueueSize, r.logger)
			refresher = res.pool
		}
	}

	res.engine = suggest.NewEngine(suggest.EngineParams{
		Users:     users,
		Songs:     songs,
		Catalog:   catalog,
		Results:   cache.NewLRU[services.SongResult](config.Engine.CacheCapacity),
		Likes:     likes,
		Refresher: refresher,
		Limit:     config.Engine.SuggestionLimit,
		Logger:    r.logger,
	})

	return res, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
