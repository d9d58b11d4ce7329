package main

import (
	"encoding/base64"
	"fmt"
	"os"

	// Packages
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VoiceCommands struct {
	Voices VoicesCmd `cmd:"" name:"voices" help:"List the voice catalog." group:"VOICE"`
	Speak  SpeakCmd  `cmd:"" name:"speak" help:"Synthesize speech." group:"VOICE"`
	Health HealthCmd `cmd:"" name:"health" help:"Check the server." group:"SERVER"`
}

type VoicesCmd struct{}

type SpeakCmd struct {
	schema.SpeechRequest
	Out string `name:"out" type:"path" help:"Write the audio to a file"`
}

type HealthCmd struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VoicesCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	term, err := ctx.Term()
	if err != nil {
		return err
	}
	response, err := client.Voices(ctx.ctx)
	if err != nil {
		return err
	}
	term.Table(schema.VoiceTable{Voices: response.Voices, Current: response.Current})
	return nil
}

func (cmd *SpeakCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	if cmd.Out != "" {
		cmd.ReturnAudio = types.Ptr(true)
	}
	speech, err := client.Synthesize(ctx.ctx, cmd.SpeechRequest)
	if err != nil {
		return err
	} else if !speech.Success {
		return fmt.Errorf("synthesis failed: %s", speech.Error)
	}

	// Write the audio, unless it is mocked
	if cmd.Out != "" && !speech.Mock {
		data, err := base64.StdEncoding.DecodeString(speech.AudioBase64)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cmd.Out, data, 0o644); err != nil {
			return err
		}
		speech.AudioBase64 = ""
	}

	fmt.Println(schema.Stringify(speech))
	return nil
}

func (cmd *HealthCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	health, err := client.Health(ctx.ctx)
	if err != nil {
		return err
	}
	fmt.Println(schema.Stringify(health))
	return nil
}
