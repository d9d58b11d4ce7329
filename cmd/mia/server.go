package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"

	// Packages
	config "github.com/mutablelogic/go-mia/pkg/config"
	httphandler "github.com/mutablelogic/go-mia/pkg/httphandler"
	manager "github.com/mutablelogic/go-mia/pkg/manager"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	store "github.com/mutablelogic/go-mia/pkg/store"
	version "github.com/mutablelogic/go-mia/pkg/version"
	voice "github.com/mutablelogic/go-mia/pkg/voice"
	server "github.com/mutablelogic/go-server"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	errgroup "golang.org/x/sync/errgroup"
)

type ServerCommands struct {
	RunServer RunServer `cmd:"" name:"run" help:"Run server." group:"SERVER"`
}

type RunServer struct {
	// Speech
	ElevenLabsKey string `name:"elevenlabs-api-key" env:"ELEVENLABS_API_KEY" help:"ElevenLabs API key. Speech is mocked without one"`

	// Sessions
	Store string `name:"store" enum:"memory,file,redis" default:"memory" help:"Session store (memory, file or redis)"`
	Dir   string `name:"dir" help:"Directory for the file session store, defaults to the user cache directory"`

	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" help:"TLS certificate file"`
		KeyFile    string `name:"key" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunServer) Run(ctx *Globals) error {
	return cmd.WithManager(ctx, func(manager *manager.Manager) error {
		group, groupctx := errgroup.WithContext(ctx.ctx)

		// Purge expired sessions until the server stops
		group.Go(func() error {
			return manager.Run(groupctx)
		})

		// Start the HTTP server and wait for shutdown
		group.Go(func() error {
			return cmd.Serve(groupctx, ctx, manager, version.Version())
		})

		return group.Wait()
	})
}

// WithManager creates the manager with its stores and synthesizer, invokes
// fn, then closes the manager
func (cmd *RunServer) WithManager(ctx *Globals, fn func(*manager.Manager) error) error {
	opts := append(ctx.config.ManagerOpts(),
		manager.WithLogger(ctx.log.Logger),
		manager.WithTracer(ctx.tracer),
	)

	// Speech synthesizer
	synthesizer, err := cmd.Synthesizer(ctx)
	if err != nil {
		return err
	} else {
		opts = append(opts, manager.WithSynthesizer(synthesizer))
	}

	// Session store
	if sessions, err := cmd.SessionStore(ctx); err != nil {
		return err
	} else {
		opts = append(opts, manager.WithSessionStore(sessions))
	}

	// Feedback store
	if ctx.config.FeedbackDSN != "" {
		feedback, err := store.OpenFeedbackStore(ctx.config.FeedbackDSN)
		if err != nil {
			return fmt.Errorf("failed to open feedback store: %w", err)
		}
		opts = append(opts, manager.WithFeedbackStore(feedback))
	}

	// Create the manager
	manager, err := manager.New(opts...)
	if err != nil {
		return err
	}
	defer manager.Close()

	if manager.Mock() {
		ctx.log.Warn().Msg("no ElevenLabs API key, speech is mocked")
	}

	// Run the server with the manager
	return fn(manager)
}

// Serve creates the router and server, and blocks until the context is
// cancelled
func (cmd *RunServer) Serve(parent context.Context, ctx *Globals, manager *manager.Manager, versionTag string) error {
	// Create middleware
	middleware := []httprouter.HTTPMiddlewareFunc{}
	if mw, ok := any(ctx.log).(server.HTTPMiddleware); ok {
		middleware = append(middleware, mw.WrapFunc)
	}

	// Create the TLS config if TLS options are provided
	var tlsConfig *tls.Config
	if cmd.TLS.CertFile != "" || cmd.TLS.KeyFile != "" {
		var pemData [][]byte
		for _, path := range []string{cmd.TLS.CertFile, cmd.TLS.KeyFile} {
			if path == "" {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read TLS file: %w", err)
			}
			pemData = append(pemData, data)
		}
		var err error
		tlsConfig, err = httpserver.TLSConfig(cmd.TLS.ServerName, false, pemData...)
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	// Create the HTTP router
	router, err := httprouter.NewRouter(parent, ctx.HTTP.Prefix, ctx.HTTP.Origin, "Mia Tech Support Avatar", versionTag, middleware...)
	if err != nil {
		return err
	} else if err := httphandler.RegisterHandlers(manager, router, true); err != nil {
		return err
	}

	// Create the server
	httpserver, err := httpserver.New(ctx.HTTP.Addr, router, tlsConfig)
	if err != nil {
		return err
	}

	// Run the server
	ctx.log.Info().Str("addr", ctx.HTTP.Addr).Str("prefix", ctx.HTTP.Prefix).Msgf("%s@%s started", ctx.execName, versionTag)
	if err := httpserver.Run(parent); err != nil {
		return err
	}

	// Return success
	ctx.log.Info().Msgf("%s@%s stopped", ctx.execName, versionTag)
	return nil
}

// Synthesizer returns the speech synthesizer, speaking through ElevenLabs
// when an API key is set
func (cmd *RunServer) Synthesizer(ctx *Globals) (*voice.Synthesizer, error) {
	opts := append(ctx.config.VoiceOpts(), voice.WithTracer(ctx.tracer))
	if cmd.ElevenLabsKey != "" {
		speaker, err := voice.NewClient(cmd.ElevenLabsKey, ctx.ClientOpts()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create ElevenLabs client: %w", err)
		}
		opts = append(opts, voice.WithSpeaker(speaker))
	}
	return voice.New(opts...)
}

// SessionStore returns the session store named by the store flag
func (cmd *RunServer) SessionStore(ctx *Globals) (schema.SessionStore, error) {
	switch cmd.Store {
	case "file":
		dir := cmd.Dir
		if dir == "" {
			cache, err := os.UserCacheDir()
			if err != nil {
				return nil, fmt.Errorf("failed to determine cache directory: %w", err)
			}
			dir = filepath.Join(cache, ctx.execName, "sessions")
		}
		return store.NewFileSessionStore(dir, ctx.config.StoreOpts()...)
	case "redis":
		return cmd.redisStore(ctx, ctx.config.Redis)
	default:
		return store.NewMemorySessionStore(ctx.config.StoreOpts()...)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *RunServer) redisStore(ctx *Globals, cfg *config.Redis) (schema.SessionStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("REDIS_URL is required for the redis session store")
	}
	client, err := cfg.New(ctx.ctx)
	if err != nil {
		return nil, err
	}
	return store.NewRedisSessionStore(client, ctx.config.StoreOpts()...)
}
