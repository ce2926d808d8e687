package db

import (
	"context"
	"log"
	"time"

	"github.com/mtilvans/flightboard/pkg/config"
)

// ReconnectWithRetry attempts to connect to the enrichment database with
// exponential backoff. Provides resilience against the database starting
// after the flightboard process.
//
// maxRetries of 0 retries forever.
func ReconnectWithRetry(cfg config.DatabaseConfig, maxRetries int, initialDelay time.Duration) (*DB, error) {
	delay := initialDelay
	attempt := 0

	for {
		attempt++

		db, err := Connect(cfg)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pingErr := db.PingContext(ctx)
			cancel()
			if pingErr == nil {
				return db, nil
			}
			db.Close()
			err = pingErr
		}

		if maxRetries > 0 && attempt >= maxRetries {
			return nil, err
		}

		log.Printf("Database connection failed: %v (retry in %v)", err, delay)
		time.Sleep(delay)

		// Exponential backoff with cap at 60 seconds
		delay *= 2
		if delay > 60*time.Second {
			delay = 60 * time.Second
		}
	}
}
