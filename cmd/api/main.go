package main

import (
	"context"
	"log"

	"conclave/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (council + ports + adapters).
// 3) Start HTTP server plus the ledger relay loop.
func main() {
	log.Println("conclave api starting")
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("conclave api stopped with error: %v", err)
	}
}
