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

// Chat sends a message within a session and returns the reply
func (c *Client) Chat(ctx context.Context, req schema.ChatRequest) (*schema.ChatResponse, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}

	// Create request
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	// Perform request
	var response schema.ChatResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("conversation", "chat")); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// Intent classifies a message without replying to it
func (c *Client) Intent(ctx context.Context, req schema.IntentRequest) (*schema.IntentResponse, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}

	// Create request
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	// Perform request
	var response schema.IntentResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("conversation", "intent")); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// History returns the messages of a session
func (c *Client) History(ctx context.Context, session string) (*schema.HistoryResponse, error) {
	if session == "" {
		return nil, fmt.Errorf("session ID cannot be empty")
	}

	// Perform request
	var response schema.HistoryResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("conversation", "session", session)); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// ClearSession forgets a session
func (c *Client) ClearSession(ctx context.Context, session string) error {
	if session == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	return c.DoWithContext(ctx, client.MethodDelete, nil, client.OptPath("conversation", "session", session))
}

// SwitchLanguage sets the language of a session
func (c *Client) SwitchLanguage(ctx context.Context, req schema.LanguageRequest) (*schema.LanguageResponse, error) {
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}
	var response schema.LanguageResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("conversation", "language")); err != nil {
		return nil, err
	}
	return &response, nil
}
