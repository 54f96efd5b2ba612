// Package instrform defines the InstructionForm annotation container that
// flows through the pipeline: produced by a parser, classified by an ISA's
// Semantics, timed by an Arch Semantics Annotator, and finally referenced
// by line number as a Kernel DG node.
package instrform

import "github.com/jdomke/OSACA/operand"

// Flag is a semantic tag attached to a Form during annotation.
type Flag int

const (
	// TPUnknown marks a form whose throughput could not be determined.
	TPUnknown Flag = iota
	// LTUnknown marks a form whose latency could not be determined.
	LTUnknown
	// NotBound marks a form with zero total port pressure despite a
	// known throughput — it isn't bound to any execution port.
	NotBound
	// HiddenLD marks a load whose port pressure was zeroed because an
	// adjacent store covers its issue (§4.4).
	HiddenLD
	// HasLD marks a form that reads from memory.
	HasLD
	// HasST marks a form that writes to memory.
	HasST
	// LD marks a form that performs a load and was timed from a DB entry,
	// either directly or via the memory→register fallback path.
	LD
)

func (f Flag) String() string {
	switch f {
	case TPUnknown:
		return "TP_UNKWN"
	case LTUnknown:
		return "LT_UNKWN"
	case NotBound:
		return "NOT_BOUND"
	case HiddenLD:
		return "HIDDEN_LD"
	case HasLD:
		return "HAS_LD"
	case HasST:
		return "HAS_ST"
	case LD:
		return "LD"
	default:
		return "UNKNOWN_FLAG"
	}
}

// FlagSet is a small ordered set of Flags. Insertion order is preserved so
// that output (e.g. in a demo table) is stable and reproducible, per the
// determinism requirement of §5.
type FlagSet struct {
	order []Flag
	has   map[Flag]bool
}

// NewFlagSet returns an empty FlagSet.
func NewFlagSet() FlagSet {
	return FlagSet{has: make(map[Flag]bool)}
}

// Add inserts f into the set if not already present.
func (s *FlagSet) Add(f Flag) {
	if s.has == nil {
		s.has = make(map[Flag]bool)
	}
	if s.has[f] {
		return
	}
	s.has[f] = true
	s.order = append(s.order, f)
}

// Has reports whether f is in the set.
func (s FlagSet) Has(f Flag) bool {
	return s.has[f]
}

// List returns the flags in insertion order.
func (s FlagSet) List() []Flag {
	out := make([]Flag, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of flags in the set.
func (s FlagSet) Len() int {
	return len(s.order)
}

// Operands holds a form's operands classified as source, destination, or
// both (src_dst), plus the original positional list. An operand is in at
// most one of Source, Destination, SrcDst; under a per-mnemonic flag entry,
// an operand flagged neither read nor written, or with no flag entry, is in
// none of them.
type Operands struct {
	Source      []operand.Operand
	Destination []operand.Operand
	SrcDst      []operand.Operand
	OperandList []operand.Operand
}

// stage tracks how far through the annotation pipeline a Form has
// progressed. It is reported by Stage(); the passes do not consult it, and
// re-running them is idempotent because ResetAnnotation clears each form.
type stage int

const (
	stageRaw stage = iota
	stageClassified
	stageTimed
	stageHiddenApplied
)

// Form is a single parsed line: a mnemonic with operands, or a bare label/
// comment/directive line (Mnemonic == nil). It owns its annotation fields
// from construction and is mutated in place by later passes.
type Form struct {
	Mnemonic   *string
	Operands   *Operands
	Comment    string
	LabelName  string
	LineNumber int

	Flags FlagSet

	Throughput     float64
	Latency        float64
	LatencyWOLoad  float64
	PortPressure   []float64
	LatencyCP      float64
	LatencyLCD     float64

	stage stage
}

// NewForm constructs a Form at its zero-valued RAW stage.
func NewForm(lineNumber int, mnemonic *string, ops []operand.Operand) *Form {
	f := &Form{
		Mnemonic:   mnemonic,
		LineNumber: lineNumber,
		Flags:      NewFlagSet(),
		stage:      stageRaw,
	}
	if ops != nil {
		f.Operands = &Operands{OperandList: ops}
	}
	return f
}

// IsLabel reports whether this form carries no mnemonic (a label, comment,
// or directive line).
func (f *Form) IsLabel() bool {
	return f.Mnemonic == nil
}

// MnemonicOrEmpty returns the mnemonic, or "" for a label/comment line.
func (f *Form) MnemonicOrEmpty() string {
	if f.Mnemonic == nil {
		return ""
	}
	return *f.Mnemonic
}

// Stage reports how far through the annotation pipeline this form has
// progressed: RAW, CLASSIFIED, TIMED, or HIDDEN_APPLIED (§9 design note).
func (f *Form) Stage() string {
	switch f.stage {
	case stageRaw:
		return "RAW"
	case stageClassified:
		return "CLASSIFIED"
	case stageTimed:
		return "TIMED"
	case stageHiddenApplied:
		return "HIDDEN_APPLIED"
	default:
		return "RAW"
	}
}

// MarkClassified advances the form to the CLASSIFIED stage.
func (f *Form) MarkClassified() { f.stage = stageClassified }

// MarkTimed advances the form to the TIMED stage.
func (f *Form) MarkTimed() { f.stage = stageTimed }

// MarkHiddenApplied advances the form to the HIDDEN_APPLIED stage.
func (f *Form) MarkHiddenApplied() { f.stage = stageHiddenApplied }

// ResetAnnotation clears every field a pass can (re-)compute, so a pass can
// be re-run on an already-annotated form and produce identical output
// (idempotence, §8). The operand list itself (OperandList) and all
// parser-provided fields are left untouched.
func (f *Form) ResetAnnotation() {
	if f.Operands != nil {
		f.Operands.Source = nil
		f.Operands.Destination = nil
		f.Operands.SrcDst = nil
	}
	f.Flags = NewFlagSet()
	f.Throughput = 0
	f.Latency = 0
	f.LatencyWOLoad = 0
	f.PortPressure = nil
	f.LatencyCP = 0
	f.LatencyLCD = 0
	f.stage = stageRaw
}
