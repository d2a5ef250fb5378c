// Storeboard tool server. Speaks MCP over stdio, so all logging goes
// to stderr to keep the protocol stream clean.
package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	toolx "github.com/warasiri/storeboard/agent/tool"
	configx "github.com/warasiri/storeboard/pkg/config"
	logx "github.com/warasiri/storeboard/pkg/logger"
	"github.com/warasiri/storeboard/pkg/toolserver"
)

const version = "0.1.0"

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.InitWriter(os.Stderr, *logCfg)

	backend := toolx.NewMockBackend()
	srv := toolserver.NewServer(version, backend)

	log.Info().Str("version", version).Msg("tool server starting on stdio")
	if err := server.ServeStdio(srv); err != nil {
		log.Fatal().Err(err).Msg("tool server exited")
	}
}
