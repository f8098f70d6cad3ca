// scripdex resolves Indian listed companies, caches their exchange
// filings locally and serves research queries over the cached content,
// both from the command line and as an MCP server.
package main

import (
	"github.com/joho/godotenv"

	"github.com/scripdex/scripdex/internal/adapters/driving/cli"
)

func main() {
	// Optional .env in the working directory; absence is fine.
	godotenv.Load() //nolint:errcheck

	cli.Execute()
}
