// Package isa implements per-ISA operand classification (§4.2): whether
// each operand of an instruction form is a source, a destination, or both,
// plus register-type classification and register aliasing for dependency
// tracking.
package isa

import (
	"strings"

	"github.com/jdomke/OSACA/instrform"
	"github.com/jdomke/OSACA/operand"
)

// RegType is the ISA-specific register type tag used both for DB shape
// matching (machinemodel) and for the memory→register fallback (§4.3).
type RegType string

const (
	// Integer marks a general-purpose/integer register.
	Integer RegType = "integer"
	// Floating marks a scalar floating-point register.
	Floating RegType = "floating"
	// Vector marks a SIMD/vector register.
	Vector RegType = "vector"
	// Predicate marks a mask/predicate register.
	Predicate RegType = "predicate"
)

// Semantics is the per-ISA contract of §4.2/§4.3: operand classification,
// register-dependency identity, register typing, and the synthetic
// register used by the memory→register fallback.
type Semantics interface {
	// Name returns the ISA name (e.g. "x86", "aarch64").
	Name() string

	// ClassifyOperands runs the §4.2 algorithm on form, mutating its
	// Operands in place and setting HasLD/HasST as appropriate. A form
	// with nil Operands is left unchanged.
	ClassifyOperands(form *instrform.Form)

	// IsRegDependentOf reports whether a and b name the same
	// architectural register, post-aliasing (§4.2).
	IsRegDependentOf(a, b operand.Register) bool

	// GetRegType classifies a register's type for this ISA.
	GetRegType(r operand.Register) RegType

	// SyntheticRegister returns the ISA-specific placeholder register
	// substituted for a Memory operand in the memory→register fallback
	// (§4.3 step 4).
	SyntheticRegister(regType RegType) operand.Register
}

// destinationRule says which positional operand(s) the ISA's default
// classification rule (when no per-mnemonic DB entry applies) treats as
// the destination.
type destinationRule int

const (
	lastOperandIsDestination destinationRule = iota
	firstOperandIsDestination
)

// classifyDefault implements the ISA default rule of §4.2 step 3.
func classifyDefault(ops []operand.Operand, rule destinationRule) (source, destination []operand.Operand) {
	if len(ops) == 0 {
		return nil, nil
	}
	switch rule {
	case lastOperandIsDestination:
		return append([]operand.Operand{}, ops[:len(ops)-1]...), []operand.Operand{ops[len(ops)-1]}
	default: // firstOperandIsDestination
		return append([]operand.Operand{}, ops[1:]...), []operand.Operand{ops[0]}
	}
}

// classifyFromFlags implements §4.2 step 2: classification driven by a
// per-operand read/write flag entry from an ISA semantics DB.
func classifyFromFlags(ops []operand.Operand, flags []OperandFlag) (source, destination, srcDst []operand.Operand) {
	for i, op := range ops {
		if i >= len(flags) {
			break
		}
		switch f := flags[i]; {
		case f.Read && f.Write:
			srcDst = append(srcDst, op)
		case f.Read:
			source = append(source, op)
		case f.Write:
			destination = append(destination, op)
		}
	}
	return source, destination, srcDst
}

func hasMemory(ops []operand.Operand) bool {
	for _, op := range ops {
		if _, ok := op.(operand.Memory); ok {
			return true
		}
	}
	return false
}

// classify is the real §4.2 entry point shared by every ISA
// implementation: it decides source/destination/src_dst (from flagsDB if
// mnemonic is known there, else the ISA's default rule), then sets
// OperandList, HAS_LD, and HAS_ST.
func classify(form *instrform.Form, rule destinationRule, flagsDB *YAMLOperandFlags) {
	if form.Operands == nil {
		return
	}
	ops := form.Operands.OperandList

	var source, destination, srcDst []operand.Operand
	if flagsDB != nil {
		if flags, ok := flagsDB.Lookup(form.MnemonicOrEmpty()); ok {
			source, destination, srcDst = classifyFromFlags(ops, flags)
			setClassification(form, source, destination, srcDst)
			return
		}
	}
	source, destination = classifyDefault(ops, rule)
	setClassification(form, source, destination, nil)
}

func setClassification(form *instrform.Form, source, destination, srcDst []operand.Operand) {
	form.Operands.Source = source
	form.Operands.Destination = destination
	form.Operands.SrcDst = srcDst

	if hasMemory(source) || hasMemory(srcDst) {
		form.Flags.Add(instrform.HasLD)
	}
	if hasMemory(destination) || hasMemory(srcDst) {
		form.Flags.Add(instrform.HasST)
	}
	form.MarkClassified()
}

// normalizeRegName lower-cases a register name and strips a leading '%'
// or '$', matching the AT&T/raw-name conventions of the upstream parser
// this classification is grounded on.
func normalizeRegName(name string) string {
	return strings.ToLower(strings.TrimLeft(name, "%$"))
}
