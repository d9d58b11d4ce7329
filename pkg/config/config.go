/*
config reads settings from the environment, optionally seeded from a
.env file, and turns them into options for the manager, the session
stores and the speech synthesizer.
*/
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	// Packages
	godotenv "github.com/joho/godotenv"
	envconfig "github.com/kelseyhightower/envconfig"
	mia "github.com/mutablelogic/go-mia"
	manager "github.com/mutablelogic/go-mia/pkg/manager"
	store "github.com/mutablelogic/go-mia/pkg/store"
	voice "github.com/mutablelogic/go-mia/pkg/voice"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config holds the settings read from MIA_ prefixed variables
type Config struct {
	LogLevel           string        `split_words:"true" default:"info"`
	DefaultLanguage    string        `split_words:"true" default:"en"`
	SessionTTL         time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SessionMaxMessages int           `split_words:"true" default:"0"`
	PurgeInterval      time.Duration `split_words:"true" default:"10m"`
	EncouragementRate  float64       `split_words:"true" default:"0.3"`
	WittyRate          float64       `split_words:"true" default:"0.2"`
	Seed               int64         `default:"0"`
	AudioDir           string        `split_words:"true"`
	BatchLimit         int           `split_words:"true" default:"4"`
	FeedbackDSN        string        `envconfig:"FEEDBACK_DSN"`

	// Redis is read from REDIS_ prefixed variables
	Redis *Redis `ignored:"true"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Prefix      = "mia"
	RedisPrefix = "redis"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Load reads the named .env files, which may be missing, and then the
// environment. Redis is only configured when REDIS_URL is set.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, mia.ErrBadParameter.With("env file: ", err)
	}

	cfg := new(Config)
	if err := envconfig.Process(Prefix, cfg); err != nil {
		return nil, mia.ErrBadParameter.With(err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if os.Getenv("REDIS_URL") != "" {
		cfg.Redis = new(Redis)
		if err := envconfig.Process(RedisPrefix, cfg.Redis); err != nil {
			return nil, mia.ErrBadParameter.With(err)
		}
	}

	// Return success
	return cfg, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ManagerOpts returns the manager options for these settings. A zero seed
// leaves reply selection seeded from the clock.
func (c *Config) ManagerOpts() []manager.Opt {
	opts := []manager.Opt{
		manager.WithDefaultLanguage(c.DefaultLanguage),
		manager.WithTTL(c.SessionTTL),
		manager.WithPurgeInterval(c.PurgeInterval),
		manager.WithRates(c.EncouragementRate, c.WittyRate),
	}
	if c.SessionMaxMessages > 0 {
		opts = append(opts, manager.WithMaxMessages(c.SessionMaxMessages))
	}
	if c.Seed != 0 {
		opts = append(opts, manager.WithSeed(c.Seed))
	}
	return opts
}

// StoreOpts returns the options for a session store created outside the
// manager
func (c *Config) StoreOpts() []store.Opt {
	opts := []store.Opt{
		store.WithTTL(c.SessionTTL),
		store.WithLanguage(c.DefaultLanguage),
	}
	if c.SessionMaxMessages > 0 {
		opts = append(opts, store.WithMaxMessages(c.SessionMaxMessages))
	}
	return opts
}

// VoiceOpts returns the synthesizer options for these settings
func (c *Config) VoiceOpts() []voice.Opt {
	opts := []voice.Opt{
		voice.WithBatchLimit(c.BatchLimit),
	}
	if c.AudioDir != "" {
		opts = append(opts, voice.WithAudioDir(c.AudioDir))
	}
	return opts
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Config) validate() error {
	if c.SessionTTL <= 0 {
		return mia.ErrBadParameter.Withf("MIA_SESSION_TTL: %v", c.SessionTTL)
	}
	if c.PurgeInterval <= 0 {
		return mia.ErrBadParameter.Withf("MIA_PURGE_INTERVAL: %v", c.PurgeInterval)
	}
	if c.EncouragementRate < 0 || c.EncouragementRate > 1 {
		return mia.ErrBadParameter.Withf("MIA_ENCOURAGEMENT_RATE: %v", c.EncouragementRate)
	}
	if c.WittyRate < 0 || c.WittyRate > 1 {
		return mia.ErrBadParameter.Withf("MIA_WITTY_RATE: %v", c.WittyRate)
	}
	if c.BatchLimit < 1 {
		return mia.ErrBadParameter.Withf("MIA_BATCH_LIMIT: %v", c.BatchLimit)
	}
	return nil
}
