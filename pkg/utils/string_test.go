package utils

import (
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Truncate", func() {
	It("returns the string unchanged when within the limit", func() {
		Expect(Truncate("short", 10)).To(Equal("short"))
	})

	It("returns the string unchanged when exactly at the limit", func() {
		Expect(Truncate("12345", 5)).To(Equal("12345"))
	})

	It("truncates with ellipsis when over the limit", func() {
		Expect(Truncate("data: a long frame\n\n", 10)).To(Equal("data: a lo..."))
	})

	It("does not split multi-byte runes", func() {
		// "é" is two bytes; a cut at byte 2 would land inside it.
		result := Truncate("aé-suffix", 2)
		Expect(result).To(Equal("a..."))
		Expect(utf8.ValidString(result)).To(BeTrue())
	})
})
