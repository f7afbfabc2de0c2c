package listing_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"mcasm/pkg/asm"
	"mcasm/pkg/listing"
)

const source = "`R1 acc\n$start MVI acc 3   # load\nADD acc acc acc\n$stop END"

var _ = Describe("Listing", func() {
	var res *asm.Result

	BeforeEach(func() {
		var err error
		res, err = asm.Assemble(source)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should show every instruction with its source and machine code", func() {
		out := listing.Program(res.Encoded)

		Expect(out).To(ContainSubstring("$start MVI acc 3"))
		Expect(out).To(ContainSubstring("1000 0111 0000 0011"))
		Expect(out).To(ContainSubstring("0001 0111 0111 0111"))
		Expect(out).NotTo(ContainSubstring("# load"))
		Expect(out).NotTo(ContainSubstring("`R1"))
	})

	It("should list labels sorted with their encoded field", func() {
		out := listing.Labels(res.Labels)

		Expect(strings.Index(out, "START")).To(BeNumerically("<", strings.Index(out, "STOP")))
		Expect(out).To(ContainSubstring("0010"))
	})

	It("should list aliases", func() {
		out := listing.Aliases(res.Aliases)
		Expect(out).To(ContainSubstring("acc"))
		Expect(out).To(ContainSubstring("R1"))
	})

	It("should skip empty symbol tables", func() {
		plain, err := asm.Assemble("END")
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		Expect(listing.Write(&buf, plain)).To(Succeed())
		out := strings.ToUpper(buf.String())
		Expect(out).To(ContainSubstring("PROGRAM"))
		Expect(out).NotTo(ContainSubstring("LABELS"))
		Expect(out).NotTo(ContainSubstring("ALIASES"))
	})

	It("should write all tables for a program with symbols", func() {
		var buf bytes.Buffer
		Expect(listing.Write(&buf, res)).To(Succeed())
		out := strings.ToUpper(buf.String())
		Expect(out).To(ContainSubstring("LABELS"))
		Expect(out).To(ContainSubstring("ALIASES"))
	})
})
