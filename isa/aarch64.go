package isa

import (
	"github.com/jdomke/OSACA/instrform"
	"github.com/jdomke/OSACA/operand"
)

// AArch64 implements Semantics for AArch64: the default classification
// rule is "first operand is the destination", and register aliasing
// collapses a register's GPR width names (x.. / w..) onto one canonical
// integer resource, and its vector/FP width names (v../q../d../s../h../b..)
// onto one canonical vector resource.
type AArch64 struct {
	flags *YAMLOperandFlags
}

// NewAArch64 builds an AArch64 semantics. flags may be nil; when set, it
// overrides the default first-operand-is-destination rule on a
// per-mnemonic basis.
func NewAArch64(flags *YAMLOperandFlags) *AArch64 {
	return &AArch64{flags: flags}
}

// Name implements Semantics.
func (a *AArch64) Name() string { return "aarch64" }

// ClassifyOperands implements Semantics.
func (a *AArch64) ClassifyOperands(form *instrform.Form) {
	classify(form, firstOperandIsDestination, a.flags)
}

// IsRegDependentOf implements Semantics.
func (a *AArch64) IsRegDependentOf(x, y operand.Register) bool {
	return aarch64Bank(x.Prefix) == aarch64Bank(y.Prefix) && normalizeRegName(x.Name) == normalizeRegName(y.Name)
}

// GetRegType implements Semantics.
func (a *AArch64) GetRegType(r operand.Register) RegType {
	switch normalizeRegName(r.Prefix) {
	case "x", "w":
		return Integer
	case "p", string(Predicate):
		return Predicate
	case "v", "q", "d", "s", "h", "b", string(Vector):
		return Vector
	case string(Floating):
		return Floating
	default:
		return Integer
	}
}

// SyntheticRegister implements Semantics.
func (a *AArch64) SyntheticRegister(regType RegType) operand.Register {
	return operand.Register{Prefix: string(regType), Name: "0"}
}

// aarch64Bank groups the AArch64 register-width prefixes that name the
// same physical register into one register-file bank: x/w share the
// integer file, and v/q/d/s/h/b share the vector/FP file.
func aarch64Bank(prefix string) string {
	switch normalizeRegName(prefix) {
	case "x", "w":
		return "gpr"
	case "v", "q", "d", "s", "h", "b":
		return "vec"
	case "p":
		return "pred"
	default:
		return normalizeRegName(prefix)
	}
}
