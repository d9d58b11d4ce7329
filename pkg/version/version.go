// Package version reports the build of the running binary. GitTag and
// GitBranch are set with -ldflags at build time.
package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Metadata describes a build
type Metadata struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Tag       string `json:"tag,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Hash      string `json:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Source    string `json:"source,omitempty"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	GitTag    string
	GitBranch string
)

const (
	dev     = "dev"
	hashLen = 12
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, branch or short commit hash of the build
func Version() string {
	switch {
	case GitTag != "":
		return GitTag
	case GitBranch != "":
		return GitBranch
	}
	if hash := setting("vcs.revision"); len(hash) >= hashLen {
		return hash[:hashLen]
	}
	return dev
}

// Build returns the metadata for the named executable
func Build(name string) Metadata {
	meta := Metadata{
		Name:      name,
		Version:   Version(),
		Tag:       GitTag,
		Branch:    GitBranch,
		Hash:      setting("vcs.revision"),
		BuildTime: setting("vcs.time"),
		Modified:  setting("vcs.modified") == "true",
		Compiler:  runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		meta.Source = info.Main.Path
	}
	return meta
}

// JSON returns the build metadata as indented JSON
func JSON(name string) []byte {
	data, err := json.MarshalIndent(Build(name), "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setting(key string) string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == key {
				return s.Value
			}
		}
	}
	return ""
}
