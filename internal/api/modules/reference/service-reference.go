package reference_module

import (
	"fmt"
	"log"

	reference_store "github.com/alokugamage/eightbit-backend/internal/stores/reference"
	"github.com/alokugamage/eightbit-backend/pkg/utils"
	"github.com/go-sql-driver/mysql"
)

// ReferenceService exposes the read-only reference data to the API module
type ReferenceService struct {
	store reference_store.Store
}

var referenceService *ReferenceService

/** ---- INIT ---- */

// Init creates the reference service from configuration
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
	var store reference_store.Store
	if dbConfig.DBName != "" {
		// Create sql store
		sqlStore, err := reference_store.NewMySqlStore(dbConfig.FormatDSN())
		if err != nil {
			return err
		}
		store = sqlStore
	} else {
		// Fallback to an empty in-memory store
		log.Println("[REFERENCE]: Warning, MYSQL_DATABASE not set, using empty in-memory store")
		store = reference_store.NewInMemoryStore()
	}

	return InitWithStore(store)
}

// InitWithStore creates the reference service on an existing store. Used by
// Init and by tests that supply an in-memory store.
func InitWithStore(store reference_store.Store) error {
	referenceService = &ReferenceService{store: store}
	return nil
}

// GetService returns the initialized reference service
func GetService() *ReferenceService {
	return referenceService
}
