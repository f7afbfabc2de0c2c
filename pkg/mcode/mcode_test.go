package mcode_test

import (
	"errors"
	"os"
	"path/filepath"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"mcasm/pkg/asm"
	"mcasm/pkg/mcode"
)

func mustAssemble(src string) []asm.Encoded {
	res, err := asm.Assemble(src)
	Expect(err).NotTo(HaveOccurred())
	return res.Encoded
}

var _ = Describe("Format", func() {
	It("should match the reference output byte for byte", func() {
		out := mcode.Format(mustAssemble("ADD R0 R1 R2\nEND"), false)
		Expect(out).To(Equal("0001 0110 0111 1000 \n0000 0000 0000 0000\n"))
	})

	It("should drop the trailing separator when trimming", func() {
		out := mcode.Format(mustAssemble("ADD R0 R1 R2\nLDM"), true)
		Expect(out).To(Equal("0001 0110 0111 1000\n0101 0000 0000 0000\n"))
	})

	It("should emit nothing for labels and alias declarations", func() {
		src := "$top\n`R0 x\n# note\nMVI x top\nEND"
		out := mcode.Format(mustAssemble(src), true)
		Expect(out).To(Equal("1000 0110 0000 0000\n0000 0000 0000 0000\n"))
	})

	It("should produce an empty file for an empty program", func() {
		Expect(mcode.Format(mustAssemble("# nothing here\n"), false)).To(BeEmpty())
	})
})

var _ = Describe("EmitAll", func() {
	var (
		mockCtrl *gomock.Controller
		emitter  *MockEmitter
		encoded  []asm.Encoded
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		emitter = NewMockEmitter(mockCtrl)
		encoded = mustAssemble("MVI R0 5\nSTM R0\nEND")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should emit every instruction in program order", func() {
		gomock.InOrder(
			emitter.EXPECT().Emit(encoded[0]).Return(nil),
			emitter.EXPECT().Emit(encoded[1]).Return(nil),
			emitter.EXPECT().Emit(encoded[2]).Return(nil),
		)

		Expect(mcode.EmitAll(emitter, encoded)).To(Succeed())
	})

	It("should stop at the first emitter failure", func() {
		diskFull := errors.New("disk full")
		gomock.InOrder(
			emitter.EXPECT().Emit(encoded[0]).Return(nil),
			emitter.EXPECT().Emit(encoded[1]).Return(diskFull),
		)

		err := mcode.EmitAll(emitter, encoded)
		Expect(err).To(MatchError(diskFull))
		Expect(err.Error()).To(ContainSubstring("line 2"))
	})
})

var _ = Describe("OutputPath", func() {
	DescribeTable("deriving the output path",
		func(input, explicit, want string) {
			Expect(mcode.OutputPath(input, explicit)).To(Equal(want))
		},
		Entry("explicit path wins", "prog_assembly.txt", "out.bin", "out.bin"),
		Entry("substring substitution", "prog_assembly.txt", "", "prog_mcode.txt"),
		Entry("every occurrence", "assembly/fib.assembly", "", "mcode/fib.mcode"),
		Entry("extension fallback", "prog.s", "", "prog.mcode"),
		Entry("no extension", "prog", "", "prog.mcode"),
		Entry("already .mcode", "prog.mcode", "", "prog.mcode.mcode"),
	)
})

var _ = Describe("WriteFile", func() {
	It("should write the whole program", func() {
		path := filepath.Join(GinkgoT().TempDir(), "out.mcode")
		Expect(mcode.WriteFile(path, mustAssemble("BEQ R0 R1\nEND"), false)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("1001 0000 0110 0111 \n0000 0000 0000 0000\n"))
	})
})
