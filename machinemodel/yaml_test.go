package machinemodel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jdomke/OSACA/machinemodel"
	"github.com/jdomke/OSACA/operand"
)

const testYAML = `
isa: x86
ports: [p0, p1, p_ld, p_st]
data_ports: [p_ld, p_st]
has_hidden_loads: true
load_throughput_multiplier:
  gpr: 1.0
load_throughput:
  - base_reg_type: gpr
    port_pressure:
      - cycles: 1
        ports: [p_ld]
load_latency:
  gpr: 4
instructions:
  - name: movq
    operands:
      - class: register
        reg_type: gpr
      - class: register
        reg_type: gpr
    throughput: 0.5
    latency: 1
    port_pressure:
      - cycles: 1
        ports: [p0, p1]
  - name: addq
    operands:
      - class: register
        reg_type: gpr
      - class: register
        reg_type: gpr
    throughput: 0.33
    latency: 1
    port_pressure:
      - cycles: 1
        ports: [p0]
`

func gprClassifier(r operand.Register) string {
	return "gpr"
}

var _ = Describe("YAMLModel", func() {
	var model *machinemodel.YAMLModel

	BeforeEach(func() {
		var err error
		model, err = machinemodel.ParseYAML([]byte(testYAML), machinemodel.WithRegTypeClassifier(gprClassifier))
		Expect(err).NotTo(HaveOccurred())
	})

	It("exposes ISA, ports, and data ports", func() {
		Expect(model.ISA()).To(Equal("x86"))
		Expect(model.Ports()).To(Equal([]string{"p0", "p1", "p_ld", "p_st"}))
		Expect(model.DataPorts()).To(Equal([]string{"p_ld", "p_st"}))
		Expect(model.HasHiddenLoads()).To(BeTrue())
	})

	It("matches instructions by mnemonic and operand shape, case-insensitively", func() {
		entry, ok := model.GetInstruction("MOVQ", []operand.Operand{
			operand.Register{Name: "rdx"},
			operand.Register{Name: "rax"},
		})
		Expect(ok).To(BeTrue())
		Expect(*entry.Throughput).To(Equal(0.5))
		Expect(*entry.Latency).To(Equal(1.0))
	})

	It("fails to match when operand count or shape differs", func() {
		_, ok := model.GetInstruction("movq", []operand.Operand{operand.Register{Name: "rax"}})
		Expect(ok).To(BeFalse())

		_, ok = model.GetInstruction("movq", []operand.Operand{
			operand.Memory{},
			operand.Register{Name: "rax"},
		})
		Expect(ok).To(BeFalse())
	})

	It("averages port pressure across alternatives evenly", func() {
		entry, ok := model.GetInstruction("movq", []operand.Operand{
			operand.Register{Name: "rdx"},
			operand.Register{Name: "rax"},
		})
		Expect(ok).To(BeTrue())
		avg := model.AveragePortPressure(entry.PortPressure)
		Expect(avg).To(Equal([]float64{0.5, 0.5, 0, 0}))
	})

	It("looks up load throughput and latency by base register type", func() {
		pp, ok := model.GetLoadThroughput(operand.Memory{Base: &operand.Register{Name: "rcx"}})
		Expect(ok).To(BeTrue())
		Expect(model.AveragePortPressure(pp)).To(Equal([]float64{0, 0, 1, 0}))

		lat, ok := model.GetLoadLatency("gpr")
		Expect(ok).To(BeTrue())
		Expect(lat).To(Equal(4.0))
	})

	It("reports no load-throughput-multiplier for unknown register types", func() {
		_, ok := model.LoadThroughputMultiplier("vector")
		Expect(ok).To(BeFalse())
		v, ok := model.LoadThroughputMultiplier("gpr")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1.0))
	})
})
