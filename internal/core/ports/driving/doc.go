// Package driving defines the inbound ports: the service interfaces
// exposed to the CLI and MCP adapters.
package driving
