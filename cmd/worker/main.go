package main

import (
	"context"
	"log"

	"conclave/internal/app/bootstrap"
)

// Worker process entrypoint: a headless governance daemon.
// Data flow:
// 1) Load config.
// 2) Build app wiring and seed a council.
// 3) Loop the simulator, deadline closer, and ledger relay.
func main() {
	log.Println("conclave worker starting")
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("conclave worker stopped with error: %v", err)
	}
}
