package main

import (
	// Packages
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type KnowledgeCommands struct {
	Search     SearchCmd     `cmd:"" name:"search" help:"Search the knowledge base." group:"KNOWLEDGE"`
	Solution   SolutionCmd   `cmd:"" name:"solution" help:"Show a solution." group:"KNOWLEDGE"`
	Categories CategoriesCmd `cmd:"" name:"categories" help:"List the knowledge base categories." group:"KNOWLEDGE"`
}

type SearchCmd struct {
	schema.SearchRequest
}

type SolutionCmd struct {
	ID string `arg:"" help:"Solution identifier"`
}

type CategoriesCmd struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *SearchCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	term, err := ctx.Term()
	if err != nil {
		return err
	}
	response, err := client.Search(ctx.ctx, cmd.SearchRequest)
	if err != nil {
		return err
	}
	if response.Count == 0 {
		term.Info("No solutions found for %q", cmd.Query)
		return nil
	}
	term.Table(schema.SolutionTable(response.Solutions))
	return nil
}

func (cmd *SolutionCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	term, err := ctx.Term()
	if err != nil {
		return err
	}
	response, err := client.Solution(ctx.ctx, cmd.ID)
	if err != nil {
		return err
	}
	if err := term.Solution(response.Solution); err != nil {
		return err
	}
	for _, related := range response.Related {
		term.Info("Related: %s (%s)", related.Title, related.ID)
	}
	return nil
}

func (cmd *CategoriesCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	term, err := ctx.Term()
	if err != nil {
		return err
	}
	response, err := client.Categories(ctx.ctx)
	if err != nil {
		return err
	}
	term.Table(schema.CategoryTable(response.Categories))
	return nil
}
