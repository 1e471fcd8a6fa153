// Command devtoken mints a bearer token for AUTH_MODE=hmac so the API can be
// exercised locally without an identity provider.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/catatusaha/internal/auth"
	"github.com/MrJamesThe3rd/catatusaha/internal/config"
)

func main() {
	var (
		user = flag.String("user", "", "user key to put in the token subject")
		ttl  = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)

	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "usage: devtoken -user <key> [-ttl 24h]")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	token, err := auth.IssueHMAC(cfg.Auth.HMACSecret, cfg.Auth.HMACIssuer, *user, *ttl)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
