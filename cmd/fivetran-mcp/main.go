package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/fivetran/fivetran-mcp/internal/common"
	"github.com/fivetran/fivetran-mcp/internal/config"
	"github.com/fivetran/fivetran-mcp/internal/fivetran"
)

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for Claude Desktop)")
	configFile := flag.String("config", "fivetran-mcp.toml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)

	client := fivetran.NewClient(cfg.Fivetran, logger)
	dispatcher := fivetran.NewDispatcher(client, logger)

	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		server.WithToolCapabilities(true),
	)

	toolCount := fivetran.RegisterTools(mcpServer, dispatcher)
	logger.Info().
		Int("tools", toolCount).
		Bool("writes_enabled", cfg.Fivetran.AllowWrites).
		Str("base_url", cfg.Fivetran.BaseURL).
		Msg("fivetran-mcp initialized")

	if *stdio {
		// Stdio transport — reads stdin, writes stdout
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	port := cfg.Server.Port

	// Streamable HTTP transport — listens on configured port
	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	fmt.Fprintf(os.Stderr, "Starting MCP Streamable HTTP on :%s\n", port)

	if err := httpServer.Start(":" + port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}
