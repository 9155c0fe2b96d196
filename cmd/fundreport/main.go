package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cleared-dev/fundreport/internal/commands"
)

func main() {
	// A missing .env is fine; flags and real environment still apply.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
