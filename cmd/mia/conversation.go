package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	// Packages
	uuid "github.com/google/uuid"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ConversationCommands struct {
	Chat     ChatCmd     `cmd:"" name:"chat" help:"Send a message and print the reply." group:"CONVERSATION"`
	Talk     TalkCmd     `cmd:"" name:"talk" help:"Start an interactive conversation." group:"CONVERSATION"`
	Intent   IntentCmd   `cmd:"" name:"intent" help:"Classify a message without replying." group:"CONVERSATION"`
	History  HistoryCmd  `cmd:"" name:"history" help:"Show the messages of a session." group:"CONVERSATION"`
	Clear    ClearCmd    `cmd:"" name:"clear" help:"Forget a session." group:"CONVERSATION"`
	Language LanguageCmd `cmd:"" name:"language" help:"Switch the language of a session." group:"CONVERSATION"`
}

type ChatCmd struct {
	schema.ChatRequest
}

type TalkCmd struct {
	Session string `name:"session" help:"Session identifier, a new session when empty"`
}

type IntentCmd struct {
	schema.IntentRequest
}

type HistoryCmd struct {
	Session string `arg:"" help:"Session identifier"`
}

type ClearCmd struct {
	Session string `arg:"" help:"Session identifier"`
}

type LanguageCmd struct {
	Language string `arg:"" help:"Language code (en or es)"`
	Session  string `name:"session" help:"Session identifier" default:"default"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	cmdQuit    = "/quit"
	cmdClear   = "/clear"
	cmdHistory = "/history"
	cmdLang    = "/lang"
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ChatCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	term, err := ctx.Term()
	if err != nil {
		return err
	}
	response, err := client.Chat(ctx.ctx, cmd.ChatRequest)
	if err != nil {
		return err
	}
	return term.Reply(response)
}

func (cmd *TalkCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	term, err := ctx.Term()
	if err != nil {
		return err
	}

	session := cmd.Session
	if session == "" {
		session = uuid.NewString()
	}
	term.Info("Session %s. Type %s to leave, %s, %s or %s <code>.", session, cmdQuit, cmdClear, cmdHistory, cmdLang)

	for {
		line, err := term.ReadLine("you")
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
			continue
		case fields[0] == cmdQuit:
			return nil
		case fields[0] == cmdClear:
			if err := client.ClearSession(ctx.ctx, session); err != nil {
				term.Error(err)
			} else {
				term.Info("Session cleared")
			}
		case fields[0] == cmdHistory:
			if history, err := client.History(ctx.ctx, session); err != nil {
				term.Error(err)
			} else {
				term.Table(schema.MessageTable(history.History))
			}
		case fields[0] == cmdLang && len(fields) == 2:
			if response, err := client.SwitchLanguage(ctx.ctx, schema.LanguageRequest{Session: session, Language: fields[1]}); err != nil {
				term.Error(err)
			} else {
				term.Info("%s", response.Message)
			}
		default:
			if response, err := client.Chat(ctx.ctx, schema.ChatRequest{Message: line, Session: session}); err != nil {
				term.Error(err)
			} else if err := term.Reply(response); err != nil {
				return err
			}
		}

		// Stop on interrupt
		if ctx.ctx.Err() != nil {
			return nil
		}
	}
}

func (cmd *IntentCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := client.Intent(ctx.ctx, cmd.IntentRequest)
	if err != nil {
		return err
	}
	fmt.Println(schema.Stringify(response))
	return nil
}

func (cmd *HistoryCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	term, err := ctx.Term()
	if err != nil {
		return err
	}
	history, err := client.History(ctx.ctx, cmd.Session)
	if err != nil {
		return err
	}
	term.Info("%s · %s · %d messages", history.Session, history.Language, history.Count)
	term.Table(schema.MessageTable(history.History))
	return nil
}

func (cmd *ClearCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	return client.ClearSession(ctx.ctx, cmd.Session)
}

func (cmd *LanguageCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := client.SwitchLanguage(ctx.ctx, schema.LanguageRequest{Session: cmd.Session, Language: cmd.Language})
	if err != nil {
		return err
	}
	fmt.Println(response.Message)
	return nil
}
