package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level string
	JSON  bool

	// Env is the deployment environment. "production" switches to JSON
	// output unless log-json is set explicitly.
	Env string

	output io.Writer
}

// Flags returns CLI flags for logger configuration
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars("JIRABRIDGE_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Value:       false,
			Destination: &c.JSON,
			Sources:     cli.EnvVars("JIRABRIDGE_LOG_JSON"),
		},
		&cli.StringFlag{
			Name:        "env",
			Usage:       "Deployment environment (development, production)",
			Value:       "development",
			Destination: &c.Env,
			Sources:     cli.EnvVars("JIRABRIDGE_ENV", "NODE_ENV"),
		},
	}
}

// SetOutput replaces os.Stdout as log destination
func (c *Logger) SetOutput(w io.Writer) {
	c.output = w
}

// IsProduction reports whether the service runs in production mode
func (c *Logger) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Configure configures and returns a logger
func (c *Logger) Configure() (*slog.Logger, error) {
	level, ok := logLevels[strings.ToLower(c.Level)]
	if !ok {
		return nil, goerr.New("invalid log level", goerr.V("level", c.Level))
	}

	w := c.output
	if w == nil {
		w = os.Stdout
	}

	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("Token"),
		masq.WithFieldName("Password"),
		masq.WithFieldName("APIToken"),
		masq.WithFieldName("token"),
		masq.WithFieldName("password"),
		masq.WithFieldName("apiToken"),
	)

	var handler slog.Handler
	if c.JSON || c.IsProduction() {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: filter,
		})
	} else {
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithColor(w == os.Stdout),
			clog.WithReplaceAttr(filter),
		)
	}

	return slog.New(handler), nil
}
