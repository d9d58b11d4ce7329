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

// Search returns the knowledge base solutions which best match a query
func (c *Client) Search(ctx context.Context, req schema.SearchRequest) (*schema.SearchResponse, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	// Create request
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	// Perform request
	var response schema.SearchResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("knowledge", "search")); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// Solution returns a solution and the solutions related to it
func (c *Client) Solution(ctx context.Context, id string) (*schema.SolutionResponse, error) {
	if id == "" {
		return nil, fmt.Errorf("solution ID cannot be empty")
	}
	var response schema.SolutionResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("knowledge", "solution", id)); err != nil {
		return nil, err
	}
	return &response, nil
}

// Categories lists the knowledge base categories
func (c *Client) Categories(ctx context.Context) (*schema.CategoriesResponse, error) {
	var response schema.CategoriesResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("knowledge", "categories")); err != nil {
		return nil, err
	}
	return &response, nil
}
