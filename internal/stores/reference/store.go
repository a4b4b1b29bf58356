package reference

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a reference row does not exist
var ErrNotFound = errors.New("not found")

// Store interface defines read access to the immutable reference data.
// Rows are created by an external data-loading collaborator; this store
// never mutates them.
type Store interface {
	ListInstructionSets(ctx context.Context) ([]*InstructionSet, error)
	GetInstructionSet(ctx context.Context, id uint) (*InstructionSet, error)
	ListExamplePrograms(ctx context.Context) ([]*ExampleProgram, error)
	GetExampleProgram(ctx context.Context, id uint) (*ExampleProgram, error)
}

// SqlStore handles reference data access using GORM
type SqlStore struct {
	db *gorm.DB
}

// NewMySqlStore creates a new reference store with a MySQL connection
func NewMySqlStore(databaseURL string) (*SqlStore, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return NewSqlStore(db)
}

// NewSqlStore creates a reference store on an existing GORM connection
func NewSqlStore(db *gorm.DB) (*SqlStore, error) {
	store := &SqlStore{db: db}

	// Auto-migrate tables
	if err := db.AutoMigrate(&InstructionSet{}, &ExampleProgram{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// ListInstructionSets retrieves all instruction set entries
func (s *SqlStore) ListInstructionSets(ctx context.Context) ([]*InstructionSet, error) {
	var instructions []*InstructionSet
	result := s.db.WithContext(ctx).Order("id").Find(&instructions)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list instruction sets: %w", result.Error)
	}

	return instructions, nil
}

// GetInstructionSet retrieves an instruction set entry by ID
func (s *SqlStore) GetInstructionSet(ctx context.Context, id uint) (*InstructionSet, error) {
	var instruction InstructionSet
	result := s.db.WithContext(ctx).First(&instruction, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get instruction set: %w", result.Error)
	}

	return &instruction, nil
}

// ListExamplePrograms retrieves all example programs
func (s *SqlStore) ListExamplePrograms(ctx context.Context) ([]*ExampleProgram, error) {
	var programs []*ExampleProgram
	result := s.db.WithContext(ctx).Order("id").Find(&programs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list example programs: %w", result.Error)
	}

	return programs, nil
}

// GetExampleProgram retrieves an example program by ID
func (s *SqlStore) GetExampleProgram(ctx context.Context, id uint) (*ExampleProgram, error) {
	var program ExampleProgram
	result := s.db.WithContext(ctx).First(&program, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get example program: %w", result.Error)
	}

	return &program, nil
}

// Close closes the database connection
func (s *SqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
