package session_module

import (
	"fmt"
	"log"
	"os"

	session_store "github.com/alokugamage/eightbit-backend/internal/stores/session"
	"github.com/alokugamage/eightbit-backend/pkg/utils"
	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

// SessionService wires the session store, lifecycle manager, and retention
// sweeper together for the API module
type SessionService struct {
	manager *session_store.Manager
	sweeper *session_store.Sweeper
}

var sessionService *SessionService

/** ---- INIT ---- */

// Init creates the session service from configuration
func Init(cfg *utils.Config) error {
	// Create MySQL config
	dbConfig := mysql.Config{
		User:      cfg.Get("MYSQL_USER"),
		Passwd:    cfg.Get("MYSQL_ROOT_PASSWORD"),
		Net:       "tcp",
		Addr:      fmt.Sprintf("%s:%s", cfg.Get("MYSQL_HOST"), cfg.Get("MYSQL_PORT")),
		DBName:    cfg.Get("MYSQL_DATABASE"),
		ParseTime: true,
	}

	// Create store
	var store session_store.Store
	if dbConfig.DBName != "" {
		// Create sql store
		sqlStore, err := session_store.NewMySqlStore(dbConfig.FormatDSN())
		if err != nil {
			return err
		}
		store = sqlStore
	} else {
		// Fallback to in-memory store
		log.Println("[SESSION]: Warning, MYSQL_DATABASE not set, using in-memory store (data will not persist across restarts)")
		store = session_store.NewInMemoryStore()
	}

	// Load sweeper options
	opts, err := loadSweeperOptions(cfg)
	if err != nil {
		return err
	}

	return InitWithStore(store, opts)
}

// InitWithStore creates the session service on an existing store. Used by
// Init and by tests that supply an in-memory store.
func InitWithStore(store session_store.Store, opts *session_store.SweeperOptions) error {
	sweeper := session_store.NewSweeper(store, opts)
	if err := sweeper.Start(); err != nil {
		return err
	}

	sessionService = &SessionService{
		manager: session_store.NewManager(store),
		sweeper: sweeper,
	}

	return nil
}

// GetService returns the initialized session service
func GetService() *SessionService {
	return sessionService
}

// loadSweeperOptions reads sweeper options from the YAML file named by
// SWEEPER_CONFIG_PATH, falling back to SESSION_RETENTION_DAYS and defaults
func loadSweeperOptions(cfg *utils.Config) (*session_store.SweeperOptions, error) {
	opts := session_store.SweeperOptions{
		RetentionDays: cfg.GetIntWithDefault("SESSION_RETENTION_DAYS", session_store.DefaultRetentionDays),
	}

	cfgPath := cfg.Get("SWEEPER_CONFIG_PATH")
	if cfgPath == "" {
		return &opts, nil
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweeper config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse sweeper config file: %w", err)
	}

	return &opts, nil
}
