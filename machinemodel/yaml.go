package machinemodel

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jdomke/OSACA/operand"
)

// RegTypeClassifier maps a register operand to its ISA-specific register
// type tag (e.g. "gpr", "vector", "predicate"), the same tag vocabulary
// used by a DB entry's per-operand reg_type and by load_throughput/
// load_latency's keys. A MachineModel needs one to perform the
// register-type-aware shape matching of §4.1.
type RegTypeClassifier func(operand.Register) string

// YAMLModel is the reference MachineModel implementation, loaded from the
// YAML document shape of §6, in the same yaml.v3 struct-tag-and-Unmarshal
// style the teacher repo's own program loader uses for its per-core YAML
// (core.YAMLCoreProgram et al.).
type YAMLModel struct {
	isa            string
	ports          []string
	dataPorts      []string
	hasHiddenLoads bool
	multiplier     map[string]float64
	loadLatency    map[string]float64
	loadThroughput []LoadThroughputEntry
	instructions   map[string][]yamlInstruction
	regType        RegTypeClassifier
}

type yamlRoot struct {
	ISA                      string               `yaml:"isa"`
	Ports                    []string             `yaml:"ports"`
	DataPorts                []string             `yaml:"data_ports"`
	HasHiddenLoads           bool                 `yaml:"has_hidden_loads"`
	LoadThroughputMultiplier map[string]float64   `yaml:"load_throughput_multiplier"`
	LoadThroughput           []yamlLoadThroughput `yaml:"load_throughput"`
	LoadLatency              map[string]float64   `yaml:"load_latency"`
	Instructions             []yamlInstruction    `yaml:"instructions"`
}

type yamlLoadThroughput struct {
	BaseRegType  string                  `yaml:"base_reg_type"`
	IndexRegType string                  `yaml:"index_reg_type,omitempty"`
	PortPressure []yamlPortPressureEntry `yaml:"port_pressure"`
}

type yamlInstruction struct {
	Name         string                  `yaml:"name"`
	Operands     []yamlOperandShape      `yaml:"operands"`
	Throughput   *float64                `yaml:"throughput"`
	Latency      *float64                `yaml:"latency"`
	PortPressure []yamlPortPressureEntry `yaml:"port_pressure"`
}

type yamlOperandShape struct {
	Class   string `yaml:"class"`
	RegType string `yaml:"reg_type,omitempty"`
}

type yamlPortPressureEntry struct {
	Cycles float64  `yaml:"cycles"`
	Ports  []string `yaml:"ports"`
}

// Option configures a YAMLModel at load time.
type Option func(*YAMLModel)

// WithRegTypeClassifier sets the register-type classifier used for
// operand-shape matching. Required before GetInstruction/
// GetLoadThroughput can match register operands meaningfully; without one,
// register operands have no type, so they match only operand shapes without
// a reg_type and only load_throughput entries without a base_reg_type.
func WithRegTypeClassifier(classify RegTypeClassifier) Option {
	return func(m *YAMLModel) {
		m.regType = classify
	}
}

// LoadYAML reads and parses a machine-model YAML document from path,
// applying any options, and returns the resulting MachineModel.
func LoadYAML(path string, opts ...Option) (*YAMLModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("machinemodel: reading %s: %w", path, err)
	}
	return ParseYAML(data, opts...)
}

// ParseYAML parses a machine-model YAML document already in memory.
func ParseYAML(data []byte, opts ...Option) (*YAMLModel, error) {
	var root yamlRoot
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("machinemodel: parsing YAML: %w", err)
	}

	m := &YAMLModel{
		isa:            root.ISA,
		ports:          root.Ports,
		dataPorts:      root.DataPorts,
		hasHiddenLoads: root.HasHiddenLoads,
		multiplier:     root.LoadThroughputMultiplier,
		loadLatency:    root.LoadLatency,
		instructions:   make(map[string][]yamlInstruction),
	}

	for _, lt := range root.LoadThroughput {
		m.loadThroughput = append(m.loadThroughput, LoadThroughputEntry{
			BaseRegType:  lt.BaseRegType,
			IndexRegType: lt.IndexRegType,
			PortPressure: toPortPressureEntries(lt.PortPressure),
		})
	}

	for _, instr := range root.Instructions {
		key := strings.ToLower(instr.Name)
		m.instructions[key] = append(m.instructions[key], instr)
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

func toPortPressureEntries(in []yamlPortPressureEntry) []PortPressureEntry {
	out := make([]PortPressureEntry, len(in))
	for i, e := range in {
		out[i] = PortPressureEntry{Cycles: e.Cycles, Ports: e.Ports}
	}
	return out
}

// ISA implements MachineModel.
func (m *YAMLModel) ISA() string { return m.isa }

// Ports implements MachineModel.
func (m *YAMLModel) Ports() []string {
	out := make([]string, len(m.ports))
	copy(out, m.ports)
	return out
}

// DataPorts implements MachineModel.
func (m *YAMLModel) DataPorts() []string {
	out := make([]string, len(m.dataPorts))
	copy(out, m.dataPorts)
	return out
}

// HasHiddenLoads implements MachineModel.
func (m *YAMLModel) HasHiddenLoads() bool { return m.hasHiddenLoads }

// LoadThroughputMultiplier implements MachineModel.
func (m *YAMLModel) LoadThroughputMultiplier(regType string) (float64, bool) {
	v, ok := m.multiplier[regType]
	return v, ok
}

// GetLoadLatency implements MachineModel.
func (m *YAMLModel) GetLoadLatency(regType string) (float64, bool) {
	v, ok := m.loadLatency[regType]
	return v, ok
}

// GetLoadThroughput implements MachineModel.
func (m *YAMLModel) GetLoadThroughput(mem operand.Memory) ([]PortPressureEntry, bool) {
	baseType := m.classify(mem.Base)
	indexType := m.classify(mem.Index)
	for _, lt := range m.loadThroughput {
		if lt.BaseRegType != baseType {
			continue
		}
		if lt.IndexRegType != "" && lt.IndexRegType != indexType {
			continue
		}
		return lt.PortPressure, true
	}
	return nil, false
}

// AveragePortPressure implements MachineModel.
func (m *YAMLModel) AveragePortPressure(entries []PortPressureEntry) []float64 {
	vec := make([]float64, len(m.ports))
	portIndex := make(map[string]int, len(m.ports))
	for i, p := range m.ports {
		portIndex[p] = i
	}
	for _, e := range entries {
		if len(e.Ports) == 0 {
			continue
		}
		share := e.Cycles / float64(len(e.Ports))
		for _, p := range e.Ports {
			if idx, ok := portIndex[p]; ok {
				vec[idx] += share
			}
		}
	}
	return vec
}

// GetInstruction implements MachineModel.
func (m *YAMLModel) GetInstruction(mnemonic string, operands []operand.Operand) (Entry, bool) {
	candidates := m.instructions[strings.ToLower(mnemonic)]
	for _, c := range candidates {
		if m.shapeMatches(c.Operands, operands) {
			return Entry{
				Throughput:   c.Throughput,
				Latency:      c.Latency,
				PortPressure: toPortPressureEntries(c.PortPressure),
			}, true
		}
	}
	return Entry{}, false
}

func (m *YAMLModel) shapeMatches(shape []yamlOperandShape, operands []operand.Operand) bool {
	if len(shape) != len(operands) {
		return false
	}
	for i, s := range shape {
		if !m.operandMatches(s, operands[i]) {
			return false
		}
	}
	return true
}

func (m *YAMLModel) operandMatches(shape yamlOperandShape, op operand.Operand) bool {
	switch o := op.(type) {
	case operand.Register:
		if shape.Class != "register" {
			return false
		}
		if shape.RegType == "" {
			return true
		}
		return m.classify(&o) == shape.RegType
	case operand.Memory:
		return shape.Class == "memory"
	case operand.Immediate:
		return shape.Class == "immediate"
	case operand.Identifier:
		return shape.Class == "label"
	default:
		return false
	}
}

func (m *YAMLModel) classify(r *operand.Register) string {
	if r == nil || m.regType == nil {
		return ""
	}
	return m.regType(*r)
}
