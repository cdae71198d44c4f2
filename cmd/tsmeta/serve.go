package main

import (
	"fmt"

	mcpserver "github.com/gnana997/tsmeta/pkg/mcp"
	"github.com/gnana997/tsmeta/pkg/mcplog"
)

// runServe starts the MCP server on stdin/stdout.
func runServe(args []string) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return fmt.Errorf("load project config: %w", err)
	}

	logPath := ""
	if cfg != nil {
		logPath = cfg.MCPLog
	}
	for i, arg := range args {
		if arg == "--log" && i+1 < len(args) {
			logPath = args[i+1]
		}
	}

	st, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	toolLog, err := mcplog.New(logPath)
	if err != nil {
		return err
	}
	if toolLog != nil {
		defer toolLog.Close()
	}

	srv := mcpserver.NewServer(st.extractor, st.parsers, toolLog)
	return srv.ServeStdio()
}
