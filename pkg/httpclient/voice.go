package httpclient

import (
	"context"
	"fmt"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Synthesize converts text to speech
func (c *Client) Synthesize(ctx context.Context, req schema.SpeechRequest) (*schema.Speech, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	// Create request
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	// Perform request
	var response schema.Speech
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("voice", "synthesize")); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// Voices lists the voice catalog
func (c *Client) Voices(ctx context.Context) (*schema.VoicesResponse, error) {
	var response schema.VoicesResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("voice", "voices")); err != nil {
		return nil, err
	}
	return &response, nil
}

// Health returns the state of the service
func (c *Client) Health(ctx context.Context) (*schema.Health, error) {
	var response schema.Health
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("health")); err != nil {
		return nil, err
	}
	return &response, nil
}
