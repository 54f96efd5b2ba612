package isa

import (
	"github.com/jdomke/OSACA/instrform"
	"github.com/jdomke/OSACA/operand"
)

// X86ATT implements Semantics for the x86 AT&T-syntax ISA: the default
// classification rule is "last operand is the destination", and register
// aliasing collapses the sub-register naming of a single physical integer
// or vector register (e.g. rax/eax/ax/al/ah) onto one canonical resource.
type X86ATT struct {
	flags *YAMLOperandFlags
	alias *registerAliasTable
}

// NewX86ATT builds an X86ATT semantics with the built-in register alias
// table. flags may be nil; when set, it overrides the default
// last-operand-is-destination rule on a per-mnemonic basis.
func NewX86ATT(flags *YAMLOperandFlags) *X86ATT {
	return &X86ATT{flags: flags, alias: newX86AliasTable()}
}

// Name implements Semantics.
func (x *X86ATT) Name() string { return "x86" }

// ClassifyOperands implements Semantics.
func (x *X86ATT) ClassifyOperands(form *instrform.Form) {
	classify(form, lastOperandIsDestination, x.flags)
}

// IsRegDependentOf implements Semantics.
func (x *X86ATT) IsRegDependentOf(a, b operand.Register) bool {
	return x.alias.canonical(a.Name) == x.alias.canonical(b.Name)
}

// GetRegType implements Semantics.
func (x *X86ATT) GetRegType(r operand.Register) RegType {
	name := normalizeRegName(r.Name)
	for _, rt := range []RegType{Floating, Vector, Predicate} {
		if name == string(rt)+"0" { // synthetic register, see SyntheticRegister
			return rt
		}
	}
	switch {
	case hasAnyPrefix(name, "xmm", "ymm", "zmm"):
		return Vector
	case hasAnyPrefix(name, "k") && len(name) > 1:
		return Predicate
	case hasAnyPrefix(name, "st", "mm"):
		return Floating
	default:
		return Integer
	}
}

// SyntheticRegister implements Semantics, building the placeholder
// register the memory→register fallback (§4.3) substitutes for a Memory
// operand: a bare register named after its own type, carrying no real
// architectural identity.
func (x *X86ATT) SyntheticRegister(regType RegType) operand.Register {
	return operand.Register{Name: string(regType) + "0"}
}

// registerAliasTable maps raw register names to a canonical resource id,
// grounded on the name<->id bidirectional binding idiom the teacher uses
// to tie register names to a single underlying resource.
type registerAliasTable struct {
	canonicalOf map[string]string
}

func newRegisterAliasTable() *registerAliasTable {
	return &registerAliasTable{canonicalOf: make(map[string]string)}
}

// group registers every name in names as an alias of the same canonical
// resource, identified by names[0].
func (t *registerAliasTable) group(names ...string) {
	canonical := names[0]
	for _, n := range names {
		t.canonicalOf[n] = canonical
	}
}

func (t *registerAliasTable) canonical(name string) string {
	n := normalizeRegName(name)
	if c, ok := t.canonicalOf[n]; ok {
		return c
	}
	return n
}

func newX86AliasTable() *registerAliasTable {
	t := newRegisterAliasTable()
	gprGroups := [][]string{
		{"rax", "eax", "ax", "al", "ah"},
		{"rbx", "ebx", "bx", "bl", "bh"},
		{"rcx", "ecx", "cx", "cl", "ch"},
		{"rdx", "edx", "dx", "dl", "dh"},
		{"rsi", "esi", "si", "sil"},
		{"rdi", "edi", "di", "dil"},
		{"rbp", "ebp", "bp", "bpl"},
		{"rsp", "esp", "sp", "spl"},
	}
	for _, g := range gprGroups {
		t.group(g...)
	}
	for i := 8; i <= 15; i++ {
		n := numToStr(i)
		t.group("r"+n, "r"+n+"d", "r"+n+"w", "r"+n+"b")
	}
	for i := 0; i <= 31; i++ {
		n := numToStr(i)
		t.group("zmm"+n, "ymm"+n, "xmm"+n)
	}
	return t
}

func numToStr(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	return string(digits[i/10]) + string(digits[i%10])
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if len(s) >= len(p) && s[:len(p)] == p {
			return true
		}
	}
	return false
}
