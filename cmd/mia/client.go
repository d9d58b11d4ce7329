package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	// Packages
	client "github.com/mutablelogic/go-client"
	httpclient "github.com/mutablelogic/go-mia/pkg/httpclient"
	ui "github.com/mutablelogic/go-mia/pkg/ui"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client returns a client for the server named by the HTTP flags
func (g *Globals) Client() (*httpclient.Client, error) {
	endpoint, opts, err := g.clientEndpoint()
	if err != nil {
		return nil, err
	}
	return httpclient.New(endpoint, opts...)
}

// Term returns the terminal for output and interactive input
func (g *Globals) Term() (*ui.Term, error) {
	return ui.New(os.Stdout, os.Stdin)
}

// ClientOpts returns the options shared by every outgoing HTTP client
func (g *Globals) ClientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	if g.HTTP.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.HTTP.Timeout))
	}
	return opts
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) clientEndpoint() (string, []client.ClientOpt, error) {
	scheme := "http"
	host, port, err := net.SplitHostPort(g.HTTP.Addr)
	if err != nil {
		return "", nil, err
	}

	// Default host to localhost if empty (e.g., ":5000")
	if host == "" {
		host = "localhost"
	}

	// Parse port
	portn, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return "", nil, err
	}
	if portn == 443 {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s:%v%s", scheme, host, portn, types.NormalisePath(g.HTTP.Prefix)), g.ClientOpts(), nil
}
