package reference_module

import (
	"errors"
	"net/http"
	"strconv"

	reference_store "github.com/alokugamage/eightbit-backend/internal/stores/reference"
	"github.com/alokugamage/eightbit-backend/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// ListInstructionSets handles GET requests to list all instruction set entries
func ListInstructionSets(c *gin.Context) {
	svc := GetService()

	instructions, err := svc.store.ListInstructionSets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to list instruction sets"})
		return
	}

	resp := make([]sdk.InstructionSet, 0, len(instructions))
	for _, instruction := range instructions {
		resp = append(resp, sdk.InstructionSet{
			ID:          instruction.ID,
			Name:        instruction.Name,
			Opcode:      instruction.Opcode,
			Description: instruction.Description,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// GetInstructionSet handles GET requests to retrieve an instruction set entry by ID
func GetInstructionSet(c *gin.Context) {
	svc := GetService()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Instruction set not found"})
		return
	}

	instruction, err := svc.store.GetInstructionSet(c.Request.Context(), uint(id))
	if errors.Is(err, reference_store.ErrNotFound) {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Instruction set not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to get instruction set"})
		return
	}

	c.JSON(http.StatusOK, sdk.InstructionSet{
		ID:          instruction.ID,
		Name:        instruction.Name,
		Opcode:      instruction.Opcode,
		Description: instruction.Description,
	})
}

// ListExamplePrograms handles GET requests to list all example programs
func ListExamplePrograms(c *gin.Context) {
	svc := GetService()

	programs, err := svc.store.ListExamplePrograms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to list example programs"})
		return
	}

	resp := make([]sdk.ExampleProgram, 0, len(programs))
	for _, program := range programs {
		resp = append(resp, sdk.ExampleProgram{
			ID:          program.ID,
			Name:        program.Name,
			Description: program.Description,
			Code:        program.Code,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// GetExampleProgram handles GET requests to retrieve an example program by ID
func GetExampleProgram(c *gin.Context) {
	svc := GetService()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Example program not found"})
		return
	}

	program, err := svc.store.GetExampleProgram(c.Request.Context(), uint(id))
	if errors.Is(err, reference_store.ErrNotFound) {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Example program not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to get example program"})
		return
	}

	c.JSON(http.StatusOK, sdk.ExampleProgram{
		ID:          program.ID,
		Name:        program.Name,
		Description: program.Description,
		Code:        program.Code,
	})
}
