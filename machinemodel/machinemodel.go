// Package machinemodel provides the read-only, per-CPU query surface (§4.1)
// that Arch Semantics uses to look up instruction throughput, latency, and
// port pressure. MachineModel is the contract; YAMLModel is the one
// concrete, YAML-backed implementation this repository ships.
package machinemodel

import "github.com/jdomke/OSACA/operand"

// Entry is a single instruction-form database record: its known
// throughput/latency (nil when the DB has no value for it, per §3's
// invariant that TP_UNKWN/LT_UNKWN follow from a nil here) and its raw,
// not-yet-averaged port pressure.
type Entry struct {
	Throughput   *float64
	Latency      *float64
	PortPressure []PortPressureEntry
}

// PortPressureEntry is one fractional-cycle-cost alternative: Cycles spread
// evenly across Ports (e.g. "1 cycle on {p0|p1}" is Cycles:1, Ports:
// ["p0","p1"]). AveragePortPressure collapses a list of these into a
// dense per-port vector.
type PortPressureEntry struct {
	Cycles float64
	Ports  []string
}

// LoadThroughputEntry is a load-only port pressure record, keyed by the
// register type(s) of the memory operand's base (and, optionally, index)
// registers.
type LoadThroughputEntry struct {
	BaseRegType  string
	IndexRegType string
	PortPressure []PortPressureEntry
}

// MachineModel is the read-only query surface of §4.1. Implementations
// must be safe to share, unsynchronized, across concurrent analyses, since
// they are treated as immutable values for the lifetime of any analysis
// (§5) — no method may mutate model state.
type MachineModel interface {
	// ISA returns the instruction set architecture name this model
	// describes (e.g. "x86", "aarch64").
	ISA() string

	// Ports returns the ordered list of execution port names. Its length
	// is P, the dimension of every port-pressure vector.
	Ports() []string

	// DataPorts returns the subset of Ports eligible for hidden-load
	// zeroing (§4.4).
	DataPorts() []string

	// GetInstruction looks up the DB entry whose mnemonic
	// case-insensitively equals mnemonic and whose operand shape matches
	// operands position-by-position (§4.1). Returns ok=false if no entry
	// matches.
	GetInstruction(mnemonic string, operands []operand.Operand) (entry Entry, ok bool)

	// AveragePortPressure collapses a DB port-pressure representation
	// that may list alternative port sets into a dense length-P vector
	// by even distribution across each entry's alternatives.
	AveragePortPressure(entries []PortPressureEntry) []float64

	// GetLoadThroughput returns the raw port-pressure representation of
	// a bare load through the given addressing mode (keyed by the
	// register type of its base, and its index if present). Register
	// typing is whatever the model was constructed with — a MachineModel
	// is expected to be built already knowing how to classify registers
	// for its ISA, the same way its DB entries' operand shapes do (§4.1).
	GetLoadThroughput(mem operand.Memory) ([]PortPressureEntry, bool)

	// GetLoadLatency returns the added latency of a bare load producing
	// a result of the given register type.
	GetLoadLatency(regType string) (float64, bool)

	// HasHiddenLoads reports whether this CPU has load units whose issue
	// can be hidden behind a co-resident store (§4.4).
	HasHiddenLoads() bool

	// LoadThroughputMultiplier returns the elementwise scale factor
	// applied to a load's port pressure for the given register type, if
	// the DB defines one.
	LoadThroughputMultiplier(regType string) (float64, bool)
}
