package types

// Version is the service version reported by health checks and the CLI
var Version = "dev"

// ServiceName is the service identifier
const ServiceName = "jirabridge"
