package reference

import (
	"context"
	"sync"
)

// InMemoryStore provides an in-memory implementation of Store for testing
// and for running without a configured database
type InMemoryStore struct {
	instructions []*InstructionSet
	programs     []*ExampleProgram
	mutex        sync.RWMutex
}

// NewInMemoryStore creates a new in-memory reference store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// AddInstructionSet stores an instruction set entry. Exists only so that
// tests and the data-loading collaborator can populate the store.
func (s *InMemoryStore) AddInstructionSet(instruction *InstructionSet) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	copied := *instruction
	if copied.ID == 0 {
		copied.ID = uint(len(s.instructions) + 1)
	}
	s.instructions = append(s.instructions, &copied)
}

// AddExampleProgram stores an example program. Exists only so that tests
// and the data-loading collaborator can populate the store.
func (s *InMemoryStore) AddExampleProgram(program *ExampleProgram) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	copied := *program
	if copied.ID == 0 {
		copied.ID = uint(len(s.programs) + 1)
	}
	s.programs = append(s.programs, &copied)
}

// ListInstructionSets retrieves all instruction set entries
func (s *InMemoryStore) ListInstructionSets(ctx context.Context) ([]*InstructionSet, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	instructions := make([]*InstructionSet, 0, len(s.instructions))
	for _, instruction := range s.instructions {
		copied := *instruction
		instructions = append(instructions, &copied)
	}

	return instructions, nil
}

// GetInstructionSet retrieves an instruction set entry by ID
func (s *InMemoryStore) GetInstructionSet(ctx context.Context, id uint) (*InstructionSet, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, instruction := range s.instructions {
		if instruction.ID == id {
			copied := *instruction
			return &copied, nil
		}
	}

	return nil, ErrNotFound
}

// ListExamplePrograms retrieves all example programs
func (s *InMemoryStore) ListExamplePrograms(ctx context.Context) ([]*ExampleProgram, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	programs := make([]*ExampleProgram, 0, len(s.programs))
	for _, program := range s.programs {
		copied := *program
		programs = append(programs, &copied)
	}

	return programs, nil
}

// GetExampleProgram retrieves an example program by ID
func (s *InMemoryStore) GetExampleProgram(ctx context.Context, id uint) (*ExampleProgram, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, program := range s.programs {
		if program.ID == id {
			copied := *program
			return &copied, nil
		}
	}

	return nil, ErrNotFound
}
