package db

import (
	"testing"
	"time"

	"github.com/mtilvans/flightboard/pkg/card"
	"github.com/mtilvans/flightboard/pkg/config"
)

// TestRepositoryImplementsDetailSource pins the popup contract.
func TestRepositoryImplementsDetailSource(t *testing.T) {
	var _ card.DetailSource = (*AircraftRepository)(nil)
}

// TestConnectUnreachable verifies a clean error when no database is running.
func TestConnectUnreachable(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:         "127.0.0.1",
		Port:         1, // nothing listens here
		Username:     "testuser",
		Password:     "testpass",
		Database:     "testdb",
		SSLMode:      "disable",
		MaxOpenConns: 25,
		MaxIdleConns: 5,
	}

	db, err := Connect(cfg)
	if err == nil {
		db.Close()
		t.Fatal("Expected connection error")
	}
	if err.Error() == "" {
		t.Error("Expected non-empty error message")
	}
}

// TestReconnectWithRetryGivesUp verifies the retry budget is honored.
func TestReconnectWithRetryGivesUp(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     1,
		Username: "u",
		Password: "p",
		Database: "d",
		SSLMode:  "disable",
	}

	start := time.Now()
	_, err := ReconnectWithRetry(cfg, 2, 10*time.Millisecond)
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if elapsed := time.Since(start); elapsed > 30*time.Second {
		t.Errorf("Retry loop took too long: %v", elapsed)
	}
}
