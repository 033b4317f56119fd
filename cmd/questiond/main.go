package main

import (
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"sourcetrace/questiond"
)

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	model := flag.String("model", envOr("MODEL", "gpt-4o-mini"), "upstream model name")
	cacheTTL := flag.Duration("cache-ttl", 10*time.Minute, "how long generated questions are cached")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	svc := questiond.New(questiond.Config{
		Addr:        *addr,
		UpstreamURL: os.Getenv("UPSTREAM_URL"),
		UpstreamKey: os.Getenv("UPSTREAM_API_KEY"),
		Model:       *model,
		CacheTTL:    *cacheTTL,
	}, log)

	if err := svc.Run(); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
