package reference

// InstructionSet represents a CPU instruction in the 8-bit computer
// architecture: a name, the hex opcode, and a description of what the
// instruction does.
type InstructionSet struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:100;not null"`
	Opcode      string `json:"opcode" gorm:"size:8;not null"`
	Description string `json:"description" gorm:"type:text"`
}

// TableName sets the table name for GORM
func (InstructionSet) TableName() string {
	return "instruction_sets"
}

// ExampleProgram represents a demonstration program users can load into
// the simulator.
type ExampleProgram struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
	Code        string `json:"code" gorm:"type:text"`
}

// TableName sets the table name for GORM
func (ExampleProgram) TableName() string {
	return "example_programs"
}
