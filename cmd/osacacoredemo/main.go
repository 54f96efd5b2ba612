// Command osacacoredemo wires the machine model, ISA semantics, arch
// semantics annotator, and kernel dependency graph together over a
// literal x86 kernel, the way the teacher's sample programs wire a
// simulated device together over a literal assembly program.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/jdomke/OSACA/archsemantics"
	"github.com/jdomke/OSACA/instrform"
	"github.com/jdomke/OSACA/isa"
	"github.com/jdomke/OSACA/kerneldg"
	"github.com/jdomke/OSACA/machinemodel"
	"github.com/jdomke/OSACA/operand"
)

const demoFlagsYAML = `
instructions:
  - name: addq
    operands:
      - read: true
        write: false
      - read: true
        write: true
`

const demoModelYAML = `
isa: x86
ports: [p0, p1, p2, p_ld, p_st]
data_ports: [p_ld, p_st]
has_hidden_loads: true
load_latency:
  integer: 4
load_throughput:
  - base_reg_type: integer
    port_pressure:
      - cycles: 0.5
        ports: [p_ld]
      - cycles: 0.5
        ports: [p_st]
instructions:
  - name: movq
    operands:
      - class: register
        reg_type: integer
      - class: register
        reg_type: integer
    throughput: 0.33
    latency: 1
    port_pressure:
      - cycles: 0.33
        ports: [p0, p1, p2]
  - name: addq
    operands:
      - class: register
        reg_type: integer
      - class: register
        reg_type: integer
    throughput: 0.25
    latency: 1
    port_pressure:
      - cycles: 0.25
        ports: [p0, p1, p2, p_ld]
  - name: imulq
    operands:
      - class: register
        reg_type: integer
      - class: register
        reg_type: integer
    throughput: 1
    latency: 3
    port_pressure:
      - cycles: 1
        ports: [p1]
  - name: movq
    operands:
      - class: register
        reg_type: integer
      - class: memory
    throughput: 1
    latency: 1
    port_pressure:
      - cycles: 1
        ports: [p_st]
`

func mnemonic(s string) *string { return &s }

func reg(name string) operand.Register { return operand.Register{Name: name} }

func mem(base string) operand.Memory {
	b := reg(base)
	return operand.Memory{Base: &b}
}

// buildKernel returns a literal accumulate-into-memory loop body:
//
//	movq  (rsi), rax     ; load a[i]
//	imulq rax,   rbx     ; rbx *= a[i]
//	addq  rbx,   rcx     ; acc += rbx
//	movq  rcx,   (rdi)   ; store acc
//
// with a loop-carried dependency on rcx between the addq at line 30 and
// the next iteration's addq.
func buildKernel() []*instrform.Form {
	return []*instrform.Form{
		instrform.NewForm(10, mnemonic("movq"), []operand.Operand{mem("rsi"), reg("rax")}),
		instrform.NewForm(20, mnemonic("imulq"), []operand.Operand{reg("rax"), reg("rbx")}),
		instrform.NewForm(30, mnemonic("addq"), []operand.Operand{reg("rbx"), reg("rcx")}),
		instrform.NewForm(40, mnemonic("movq"), []operand.Operand{reg("rcx"), mem("rdi")}),
	}
}

func printForms(kernel []*instrform.Form) {
	t := table.NewWriter()
	t.SetTitle("Annotated Kernel")
	t.AppendHeader(table.Row{"Line", "Mnemonic", "TP", "LT", "LT (no load)", "Port Pressure", "Flags"})
	for _, f := range kernel {
		flags := ""
		for i, fl := range f.Flags.List() {
			if i > 0 {
				flags += ","
			}
			flags += fl.String()
		}
		t.AppendRow(table.Row{
			f.LineNumber, f.MnemonicOrEmpty(), f.Throughput, f.Latency, f.LatencyWOLoad,
			fmt.Sprintf("%v", f.PortPressure), flags,
		})
	}
	fmt.Println(t.Render())
}

func printCriticalPath(path []*instrform.Form) {
	t := table.NewWriter()
	t.SetTitle("Critical Path")
	t.AppendHeader(table.Row{"Line", "Mnemonic", "Latency"})
	var total float64
	for _, f := range path {
		t.AppendRow(table.Row{f.LineNumber, f.MnemonicOrEmpty(), f.Latency})
		total += f.Latency
	}
	t.AppendFooter(table.Row{"", "total", total})
	fmt.Println(t.Render())
}

func printLoopCarried(lcd map[int]kerneldg.LoopCarriedDependency) {
	t := table.NewWriter()
	t.SetTitle("Loop-Carried Dependencies")
	t.AppendHeader(table.Row{"Root Line", "Depends On"})
	for _, root := range []int{10, 20, 30, 40} {
		chain, ok := lcd[root]
		if !ok {
			continue
		}
		deps := ""
		for i, d := range chain.Dependencies {
			if i > 0 {
				deps += ", "
			}
			deps += fmt.Sprintf("%d", d.LineNumber)
		}
		t.AppendRow(table.Row{root, deps})
	}
	fmt.Println(t.Render())
}

func main() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: archsemantics.LevelDegraded,
	})
	slog.SetDefault(slog.New(handler))

	flags, err := isa.ParseOperandFlagsYAML([]byte(demoFlagsYAML))
	if err != nil {
		slog.Error("failed to parse operand flags", "err", err)
		atexit.Exit(1)
	}
	x86 := isa.NewX86ATT(flags)
	model, err := machinemodel.ParseYAML([]byte(demoModelYAML),
		machinemodel.WithRegTypeClassifier(func(r operand.Register) string {
			return string(x86.GetRegType(r))
		}),
	)
	if err != nil {
		slog.Error("failed to parse machine model", "err", err)
		atexit.Exit(1)
	}

	kernel := buildKernel()

	annotator := archsemantics.NewAnnotator(model, x86)
	annotator.AddSemantics(kernel)
	for _, issue := range annotator.Issues() {
		slog.Warn(issue.Message, "kind", issue.Kind.String(), "line", issue.LineNumber)
	}

	graph := kerneldg.NewGraph(kernel, x86)

	summaryLines := 0
	atexit.Register(func() {
		fmt.Printf("osacacoredemo: analyzed %d instruction forms\n", summaryLines)
	})

	printForms(kernel)
	summaryLines = len(kernel)

	path, err := graph.CriticalPath()
	if err != nil {
		slog.Error("critical path", "err", err)
		atexit.Exit(1)
	}
	printCriticalPath(path)

	lcd, err := graph.LoopCarriedDependencies()
	if err != nil {
		slog.Error("loop-carried dependencies", "err", err)
		atexit.Exit(1)
	}
	printLoopCarried(lcd)

	sums := archsemantics.ThroughputSum(kernel)
	fmt.Printf("throughput_sum: %v\n", sums)

	atexit.Exit(0)
}
