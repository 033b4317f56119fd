package main

import (
	"fmt"
	"os"

	"sourcetrace/config"
	"sourcetrace/editor"
	"sourcetrace/logx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logx.DefaultPath()
	}
	log := logx.NewFileLogger(logPath)
	defer log.Sync()

	e := editor.New(cfg, log)
	if err := e.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
