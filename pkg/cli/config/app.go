package config

import (
	"bytes"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/usecase"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// App holds the path of the TOML file with non-secret tuning knobs
type App struct {
	Path string
}

// AppFile is the content of the TOML configuration file
type AppFile struct {
	Epic      EpicSection      `toml:"epic"`
	Sprint    SprintSection    `toml:"sprint"`
	Bulk      BulkSection      `toml:"bulk"`
	Translate TranslateSection `toml:"translate"`
}

// EpicSection tunes the epic search fallback chain
type EpicSection struct {
	ProbeKeys    []string `toml:"probe_keys"`
	BrowseSize   int      `toml:"browse_size"`
	ProbeTimeout Duration `toml:"probe_timeout"`
}

// SprintSection names the sprint selected by default
type SprintSection struct {
	Preferred string   `toml:"preferred"`
	Variants  []string `toml:"variants"`
}

// BulkSection tunes bulk ticket creation
type BulkSection struct {
	Delay Duration `toml:"delay"`
}

// TranslateSection sets the default language pair
type TranslateSection struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

// Duration is a time.Duration written as "1s", "500ms" in TOML
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return goerr.Wrap(err, "invalid duration", goerr.V("value", string(text)))
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Flags returns CLI flags for the configuration file
func (c *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML configuration file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("JIRABRIDGE_CONFIG"),
		},
	}
}

// Load reads the configuration file. An empty path yields defaults.
func (c *App) Load() (*AppFile, error) {
	var file AppFile
	if c.Path == "" {
		return &file, nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}
	return ParseAppFile(data)
}

// ParseAppFile decodes TOML configuration. Unknown keys are rejected.
func ParseAppFile(data []byte) (*AppFile, error) {
	var file AppFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file")
	}
	return &file, nil
}

// JiraOptions converts the file into Jira use case options
func (f *AppFile) JiraOptions() []usecase.JiraOption {
	opts := []usecase.JiraOption{
		usecase.WithEpicConfig(usecase.EpicConfig{
			BrowseSize:   f.Epic.BrowseSize,
			ProbeKeys:    f.Epic.ProbeKeys,
			ProbeTimeout: time.Duration(f.Epic.ProbeTimeout),
		}),
	}
	if f.Sprint.Preferred != "" || len(f.Sprint.Variants) > 0 {
		opts = append(opts, usecase.WithPreferredSprint(f.Sprint.Preferred, f.Sprint.Variants...))
	}
	if f.Bulk.Delay > 0 {
		opts = append(opts, usecase.WithBulkDelay(time.Duration(f.Bulk.Delay)))
	}
	return opts
}
