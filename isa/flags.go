package isa

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// OperandFlag is one operand's read/write behavior, as recorded for a
// single mnemonic in an ISA semantics DB. Both true means the operand is
// read-modify-write (src_dst); both false is not a meaningful entry and is
// ignored by classifyFromFlags.
type OperandFlag struct {
	Read  bool
	Write bool
}

// YAMLOperandFlags is an optional, YAML-loaded per-mnemonic override of an
// ISA's default source/destination classification rule (§4.2 step 2),
// mirroring how the upstream parser's instruction forms sometimes carry
// explicit operand directions instead of relying on a positional
// convention.
type YAMLOperandFlags struct {
	byMnemonic map[string][]OperandFlag
}

type yamlFlagsRoot struct {
	Instructions []yamlFlagsInstruction `yaml:"instructions"`
}

type yamlFlagsInstruction struct {
	Name     string             `yaml:"name"`
	Operands []yamlFlagsOperand `yaml:"operands"`
}

type yamlFlagsOperand struct {
	Read  bool `yaml:"read"`
	Write bool `yaml:"write"`
}

// LoadOperandFlagsYAML reads a per-mnemonic operand read/write flags
// document from path.
func LoadOperandFlagsYAML(path string) (*YAMLOperandFlags, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("isa: reading %s: %w", path, err)
	}
	return ParseOperandFlagsYAML(data)
}

// ParseOperandFlagsYAML parses a per-mnemonic operand read/write flags
// document already in memory.
func ParseOperandFlagsYAML(data []byte) (*YAMLOperandFlags, error) {
	var root yamlFlagsRoot
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("isa: parsing operand flags YAML: %w", err)
	}

	db := &YAMLOperandFlags{byMnemonic: make(map[string][]OperandFlag, len(root.Instructions))}
	for _, instr := range root.Instructions {
		flags := make([]OperandFlag, len(instr.Operands))
		for i, op := range instr.Operands {
			flags[i] = OperandFlag{Read: op.Read, Write: op.Write}
		}
		db.byMnemonic[strings.ToLower(instr.Name)] = flags
	}
	return db, nil
}

// Lookup returns the per-operand flags recorded for mnemonic, if any.
func (db *YAMLOperandFlags) Lookup(mnemonic string) ([]OperandFlag, bool) {
	if db == nil {
		return nil, false
	}
	flags, ok := db.byMnemonic[strings.ToLower(mnemonic)]
	return flags, ok
}
