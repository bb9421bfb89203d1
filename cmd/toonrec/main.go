package main

import (
	"github.com/joho/godotenv"
	"toonrec/internal/cli"
)

func main() {
	// Encoder API keys may live in a local .env; absence is fine.
	_ = godotenv.Load()

	cli.Execute()
}
