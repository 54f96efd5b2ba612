// Package archsemantics combines an ISA's operand-classification rules
// with a machine model's throughput/latency database to annotate a kernel
// of instruction forms in place, then applies the hidden-load pass.
package archsemantics

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/jdomke/OSACA/instrform"
	"github.com/jdomke/OSACA/isa"
	"github.com/jdomke/OSACA/machinemodel"
	"github.com/jdomke/OSACA/operand"
)

// LevelDegraded is the slog level used for non-fatal annotation
// degradations, alongside the teacher's own custom levels
// (core.LevelTrace, core.LevelWaveform).
const LevelDegraded slog.Level = slog.LevelWarn + 1

// Annotator assigns throughput, latency, and port pressure to every form
// of a kernel, given an ISA's Semantics and a MachineModel.
type Annotator struct {
	model     machinemodel.MachineModel
	semantics isa.Semantics
	issues    []Issue
}

// NewAnnotator builds an Annotator over model and semantics.
func NewAnnotator(model machinemodel.MachineModel, semantics isa.Semantics) *Annotator {
	return &Annotator{model: model, semantics: semantics}
}

// Issues returns every non-fatal degradation recorded since construction.
func (a *Annotator) Issues() []Issue {
	out := make([]Issue, len(a.issues))
	copy(out, a.issues)
	return out
}

// AddSemantics runs operand classification and TP/LT assignment over
// every form of kernel, then applies the hidden-load pass if the machine
// model supports it (§4.3). Re-running AddSemantics on an already
// annotated kernel is idempotent: each form is first reset to its raw
// annotation state.
func (a *Annotator) AddSemantics(kernel []*instrform.Form) {
	for _, f := range kernel {
		f.ResetAnnotation()
		a.semantics.ClassifyOperands(f)
		a.assignTPLT(f)
	}
	if a.model.HasHiddenLoads() {
		a.setHiddenLoads(kernel)
	}
}

func (a *Annotator) assignTPLT(f *instrform.Form) {
	ports := a.model.Ports()
	P := len(ports)

	switch {
	case f.IsLabel():
		f.Throughput, f.Latency, f.LatencyWOLoad = 0, 0, 0
		f.PortPressure = make([]float64, P)
	default:
		var operands []operand.Operand
		if f.Operands != nil {
			operands = f.Operands.OperandList
		}
		entry, found := a.model.GetInstruction(f.MnemonicOrEmpty(), operands)
		switch {
		case found:
			a.assignFromEntry(f, entry, P)
		case f.Flags.Has(instrform.HasLD) && a.tryMemoryFallback(f, P):
			// fully handled inside tryMemoryFallback
		default:
			a.assignUnknown(f, P)
		}
	}

	f.LatencyCP = 0
	f.LatencyLCD = 0
	f.MarkTimed()
}

func (a *Annotator) assignFromEntry(f *instrform.Form, entry machinemodel.Entry, P int) {
	throughput := 0.0
	if entry.Throughput != nil {
		throughput = *entry.Throughput
	} else {
		f.Flags.Add(instrform.TPUnknown)
	}

	latency, latencyWOLoad := 0.0, 0.0
	if entry.Latency != nil {
		latency = *entry.Latency
		latencyWOLoad = latency
	} else {
		f.Flags.Add(instrform.LTUnknown)
	}

	pp := a.model.AveragePortPressure(entry.PortPressure)
	if len(pp) == P {
		if entry.Throughput != nil && sumOf(pp) == 0 {
			f.Flags.Add(instrform.NotBound)
		}
	} else {
		a.warn(f.LineNumber, DBShapeMismatch,
			"port pressure length %d does not match port count %d for %q", len(pp), P, f.MnemonicOrEmpty())
		pp = make([]float64, P)
		f.Flags.Add(instrform.TPUnknown)
	}
	f.PortPressure = pp

	f.Throughput = throughput
	f.Latency = latency
	f.LatencyWOLoad = latencyWOLoad

	if f.Flags.Has(instrform.HasLD) {
		f.Flags.Add(instrform.LD)
	}
}

func (a *Annotator) assignUnknown(f *instrform.Form, P int) {
	f.Throughput = 0
	f.Latency = 0
	f.LatencyWOLoad = 0
	f.PortPressure = make([]float64, P)
	f.Flags.Add(instrform.TPUnknown)
	f.Flags.Add(instrform.LTUnknown)
	a.warn(f.LineNumber, UnknownInstruction,
		"no database entry or viable fallback for %q", f.MnemonicOrEmpty())
}

// tryMemoryFallback implements the memory→register fallback of §4.3 step
// 4. It returns false (and leaves f untouched) when no fallback could be
// assembled, so the caller falls back to assignUnknown.
func (a *Annotator) tryMemoryFallback(f *instrform.Form, P int) bool {
	substituted, regType, ok := a.substituteMemOperands(f)
	if !ok {
		return false
	}

	entryReg, found := a.model.GetInstruction(f.MnemonicOrEmpty(), substituted)
	if !found {
		return false
	}

	mem, ok := firstMemorySourceOperand(f)
	if !ok {
		return false
	}

	rawLoadPP, _ := a.model.GetLoadThroughput(mem)
	loadPP := a.model.AveragePortPressure(rawLoadPP)
	if multiplier, ok := a.model.LoadThroughputMultiplier(string(regType)); ok {
		for i := range loadPP {
			loadPP[i] *= multiplier
		}
	}

	regThroughput := 0.0
	if entryReg.Throughput != nil {
		regThroughput = *entryReg.Throughput
	}
	f.Throughput = math.Max(maxOf(loadPP), regThroughput)

	loadLatency, _ := a.model.GetLoadLatency(string(regType))
	regLatency := 0.0
	if entryReg.Latency != nil {
		regLatency = *entryReg.Latency
	}
	f.Latency = loadLatency + regLatency
	f.LatencyWOLoad = regLatency

	regPP := a.model.AveragePortPressure(entryReg.PortPressure)
	pp := make([]float64, P)
	for i := range pp {
		var lv, rv float64
		if i < len(loadPP) {
			lv = loadPP[i]
		}
		if i < len(regPP) {
			rv = regPP[i]
		}
		pp[i] = lv + rv
	}
	f.PortPressure = pp

	if f.Flags.Has(instrform.HasLD) {
		f.Flags.Add(instrform.LD)
	}
	return true
}

// substituteMemOperands builds the operand list used to probe the
// register-form DB entry, replacing every Memory operand with a
// synthetic register of the type of the form's first register operand
// (recording an AmbiguousLoadType issue when register types differ).
func (a *Annotator) substituteMemOperands(f *instrform.Form) (substituted []operand.Operand, regType isa.RegType, ok bool) {
	var regTypes []isa.RegType
	for _, op := range f.Operands.OperandList {
		if r, isReg := op.(operand.Register); isReg {
			regTypes = append(regTypes, a.semantics.GetRegType(r))
		}
	}
	if len(regTypes) == 0 {
		return nil, "", false
	}

	regType = regTypes[0]
	distinct := map[isa.RegType]bool{}
	for _, rt := range regTypes {
		distinct[rt] = true
	}
	if len(distinct) > 1 {
		a.warn(f.LineNumber, AmbiguousLoadType,
			"load type could not be identified clearly for %q", f.MnemonicOrEmpty())
	}

	synthetic := a.semantics.SyntheticRegister(regType)
	substituted = make([]operand.Operand, len(f.Operands.OperandList))
	for i, op := range f.Operands.OperandList {
		if _, isMem := op.(operand.Memory); isMem {
			substituted[i] = synthetic
		} else {
			substituted[i] = op
		}
	}
	return substituted, regType, true
}

// firstMemorySourceOperand returns the first Memory operand, in original
// positional order, that was classified into source or src_dst — the
// resolved reading of the "first memory source" open question (§9).
func firstMemorySourceOperand(f *instrform.Form) (operand.Memory, bool) {
	counted := make(map[operand.Operand]bool)
	for _, op := range f.Operands.Source {
		counted[op] = true
	}
	for _, op := range f.Operands.SrcDst {
		counted[op] = true
	}
	for _, op := range f.Operands.OperandList {
		if m, isMem := op.(operand.Memory); isMem && counted[op] {
			return m, true
		}
	}
	return operand.Memory{}, false
}

func (a *Annotator) setHiddenLoads(kernel []*instrform.Form) {
	var loads, stores []*instrform.Form
	for _, f := range kernel {
		hasLD := f.Flags.Has(instrform.HasLD)
		hasST := f.Flags.Has(instrform.HasST)
		switch {
		case hasLD && !hasST:
			loads = append(loads, f)
		case hasST && !hasLD:
			stores = append(stores, f)
		}
	}
	if len(loads) == 0 || len(stores) == 0 {
		return
	}

	if len(loads) <= len(stores) {
		for _, l := range loads {
			a.hideLoad(l)
		}
		return
	}

	hidden := make(map[*instrform.Form]bool, len(stores))
	for _, s := range stores {
		var best *instrform.Form
		bestDist := 0
		for _, l := range loads {
			if hidden[l] {
				continue
			}
			dist := abs(l.LineNumber - s.LineNumber)
			if best == nil || dist < bestDist || (dist == bestDist && l.LineNumber < best.LineNumber) {
				best, bestDist = l, dist
			}
		}
		if best != nil {
			hidden[best] = true
			a.hideLoad(best)
		}
	}
}

func (a *Annotator) hideLoad(f *instrform.Form) {
	f.Flags.Add(instrform.HiddenLD)
	dataPorts := make(map[string]bool)
	for _, p := range a.model.DataPorts() {
		dataPorts[p] = true
	}
	for i, p := range a.model.Ports() {
		if dataPorts[p] && i < len(f.PortPressure) {
			f.PortPressure[i] = 0
		}
	}
	f.MarkHiddenApplied()
}

func (a *Annotator) warn(lineNumber int, kind IssueKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.issues = append(a.issues, Issue{Kind: kind, LineNumber: lineNumber, Message: msg})
	slog.Log(context.Background(), LevelDegraded, msg,
		slog.Int("line", lineNumber), slog.String("kind", kind.String()))
}

// ThroughputSum returns the elementwise sum of every form's port pressure
// in kernel, rounded to 2 decimals (§6).
func ThroughputSum(kernel []*instrform.Form) []float64 {
	if len(kernel) == 0 {
		return nil
	}
	sum := make([]float64, len(kernel[0].PortPressure))
	for _, f := range kernel {
		for i, v := range f.PortPressure {
			if i < len(sum) {
				sum[i] += v
			}
		}
	}
	for i := range sum {
		sum[i] = math.Round(sum[i]*100) / 100
	}
	return sum
}

func sumOf(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}

func maxOf(vals []float64) float64 {
	m := 0.0
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
