package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	config "github.com/mutablelogic/go-mia/pkg/config"
	logger "github.com/mutablelogic/go-mia/pkg/logger"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
	term "golang.org/x/term"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// HTTP server and client
	HTTP struct {
		Prefix  string        `name:"prefix" help:"HTTP path prefix" default:"/api"`
		Addr    string        `name:"addr" env:"MIA_ADDR" help:"HTTP listen address" default:"localhost:5000"`
		Origin  string        `name:"origin" help:"Cross-origin protection origin. Empty for same-origin only, '*' to allow all origins" default:"*"`
		Timeout time.Duration `name:"timeout" help:"HTTP client timeout" default:"30s"`
	} `embed:"" prefix:"http."`

	// Context
	ctx      context.Context
	log      *logger.Logger
	config   *config.Config
	tracer   trace.Tracer
	execName string
}

type CLI struct {
	Globals
	ServerCommands
	ConversationCommands
	KnowledgeCommands
	VoiceCommands

	Version VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Load .env and settings before parsing flags
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Mia tech support assistant"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create a logger
	level := cfg.LogLevel
	if cli.Debug {
		level = "debug"
	}
	log, err := logger.New(os.Stderr, level, cli.Debug || term.IsTerminal(int(os.Stderr.Fd())))
	cmd.FatalIfErrorf(err)

	cli.Globals.ctx = ctx
	cli.Globals.log = log
	cli.Globals.config = cfg
	cli.Globals.tracer = otel.Tracer(execName())
	cli.Globals.execName = execName()

	// Run the command
	cmd.FatalIfErrorf(cmd.Run(&cli.Globals))
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	name, err := os.Executable()
	if err != nil {
		panic(err)
	}
	return filepath.Base(name)
}
