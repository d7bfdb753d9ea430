// cmd/preflight/main.go
package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	apiAddr := strings.TrimSpace(os.Getenv("ADDR"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	watchlist := strings.TrimSpace(os.Getenv("WATCHLIST"))
	slack := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK"))
	allowed := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))

	if apiAddr == "" {
		warn("ADDR is empty; the app defaults to 127.0.0.1:8080.")
	} else {
		ok("ADDR=" + apiAddr)
	}

	if db == "" {
		warn("DATABASE_URL empty — alerts will live in memory and vanish on restart.")
	} else if !strings.HasPrefix(db, "postgres://") && !strings.HasPrefix(db, "postgresql://") {
		fail("DATABASE_URL is not a postgres:// URL.")
	} else {
		ok("DATABASE_URL present")
	}

	if watchlist == "" {
		warn("WATCHLIST empty; the default B3 list will be used.")
	} else {
		if strings.Contains(watchlist, " ") {
			warn("WATCHLIST contains spaces; use comma-separated with no spaces, e.g. PETR4.SA,VALE3.SA")
		}
		ok("WATCHLIST=" + watchlist)
	}

	if slack == "" {
		warn("SLACK_WEBHOOK empty — triggered alerts will only show in the API response and logs.")
	} else if _, err := url.ParseRequestURI(slack); err != nil {
		fail("SLACK_WEBHOOK is not a valid URL.")
	} else {
		ok("SLACK_WEBHOOK present")
	}

	if allowed == "" {
		warn("ALLOWED_ORIGINS empty — the API will answer any origin.")
	} else {
		ok("ALLOWED_ORIGINS=" + allowed)
	}

	ok("preflight passed")
}
