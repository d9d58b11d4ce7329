package config

import (
	"context"
	"errors"
	"time"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	redis "github.com/redis/go-redis/v9"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Redis holds the connection settings for the redis session store.
// Timeouts are in seconds.
type Redis struct {
	URL          string `split_words:"true" required:"true"`
	ReadTimeout  int    `split_words:"true" default:"3"`
	WriteTimeout int    `split_words:"true" default:"3"`
	DialTimeout  int    `split_words:"true" default:"5"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// New connects to redis and checks the connection
func (c *Redis) New(ctx context.Context) (*redis.Client, error) {
	opts, err := redis.ParseURL(c.URL)
	if err != nil {
		return nil, mia.ErrBadParameter.With("REDIS_URL: ", err)
	}
	opts.ReadTimeout = time.Duration(c.ReadTimeout) * time.Second
	opts.WriteTimeout = time.Duration(c.WriteTimeout) * time.Second
	opts.DialTimeout = time.Duration(c.DialTimeout) * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(mia.ErrServiceUnavailable.With("redis: ", err), client.Close())
	}

	// Return success
	return client, nil
}
