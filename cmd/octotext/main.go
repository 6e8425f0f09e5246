package main

import (
	"github.com/joho/godotenv"

	"github.com/octotext/octotext/internal/adapters/driving/cli"
)

func main() {
	// Missing .env is fine; the environment and config file still apply.
	_ = godotenv.Load()

	cli.Execute()
}
