package main

import (
	"context"
	"log"

	"github.com/dalemusser/pooldash/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
	"github.com/joho/godotenv"
)

func main() {
	// A local .env is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
