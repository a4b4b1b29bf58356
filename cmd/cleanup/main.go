package main

import (
	"context"
	"fmt"
	"log"
	"os"

	session_store "github.com/alokugamage/eightbit-backend/internal/stores/session"
	"github.com/alokugamage/eightbit-backend/pkg/utils"
	"github.com/go-sql-driver/mysql"
)

// Run a single retention sweep against the session store. This is the
// operational command for purging sessions older than the retention
// threshold (default 10 days) outside of the API server's schedule.
func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	// Create MySQL config
	dbConfig := mysql.Config{
		User:      cfg.Get("MYSQL_USER"),
		Passwd:    cfg.Get("MYSQL_ROOT_PASSWORD"),
		Net:       "tcp",
		Addr:      fmt.Sprintf("%s:%s", cfg.Get("MYSQL_HOST"), cfg.Get("MYSQL_PORT")),
		DBName:    cfg.Get("MYSQL_DATABASE"),
		ParseTime: true,
	}
	if dbConfig.DBName == "" {
		log.Fatal("[CLEANUP]: MYSQL_DATABASE must be set")
	}

	// Open the session store
	store, err := session_store.NewMySqlStore(dbConfig.FormatDSN())
	if err != nil {
		log.Fatalf("[CLEANUP]: Failed to open session store: %v", err)
	}
	defer store.Close()

	// Run a single retention pass
	opts := &session_store.SweeperOptions{
		RetentionDays: cfg.GetIntWithDefault("SESSION_RETENTION_DAYS", session_store.DefaultRetentionDays),
	}
	sweeper := session_store.NewSweeper(store, opts)

	count, err := sweeper.RunOnce(context.Background())
	if err != nil {
		log.Fatalf("[CLEANUP]: Retention sweep failed: %v", err)
	}

	log.Printf("[CLEANUP]: Successfully deleted %d sessions older than %s", count, opts.Retention())
}
