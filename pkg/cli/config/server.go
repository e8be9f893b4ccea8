package config

import (
	"net"

	"github.com/urfave/cli/v3"
)

const defaultAddr = "localhost:3001"

// Server holds server configuration
type Server struct {
	Addr             string
	Port             string
	SchemaValidation bool
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       defaultAddr,
			Destination: &c.Addr,
			Sources:     cli.EnvVars("JIRABRIDGE_ADDR"),
		},
		&cli.StringFlag{
			Name:        "port",
			Usage:       "Port to listen on. Overrides the port part of --addr",
			Destination: &c.Port,
			Sources:     cli.EnvVars("PORT"),
		},
		&cli.BoolFlag{
			Name:        "schema-validation",
			Usage:       "Validate request bodies against the OpenAPI document",
			Value:       true,
			Destination: &c.SchemaValidation,
			Sources:     cli.EnvVars("JIRABRIDGE_SCHEMA_VALIDATION"),
		},
	}
}

// ListenAddr returns the address to bind. Production binds all interfaces.
func (c *Server) ListenAddr(production bool) string {
	addr := c.Addr
	if addr == "" {
		addr = defaultAddr
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = addr, ""
	}
	if c.Port != "" {
		port = c.Port
	}
	if production {
		host = ""
	}
	return net.JoinHostPort(host, port)
}
