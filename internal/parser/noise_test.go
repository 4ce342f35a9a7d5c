package parser

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IsNoise", func() {
	var (
		line  string
		noise bool
	)

	JustBeforeEach(func() {
		noise = IsNoise(line)
	})

	When("the line is a product with a price", func() {
		BeforeEach(func() {
			line = "MOGU MOGU 59.900"
		})

		It("should keep the line", func() {
			Expect(noise).To(BeFalse())
		})
	})

	When("the line is a labeled charge", func() {
		BeforeEach(func() {
			line = "Tagihan : 150.000"
		})

		It("should keep the line", func() {
			Expect(noise).To(BeFalse())
		})
	})

	When("the line is a phone header", func() {
		BeforeEach(func() {
			line = "Telp: 021-5551234"
		})

		It("should reject the line", func() {
			Expect(noise).To(BeTrue())
		})
	})

	When("the line is a mobile number", func() {
		BeforeEach(func() {
			line = "0812345678"
		})

		It("should reject the line", func() {
			Expect(noise).To(BeTrue())
		})
	})

	When("the line is a +62 number", func() {
		BeforeEach(func() {
			line = "+628123456789"
		})

		It("should reject the line", func() {
			Expect(noise).To(BeTrue())
		})
	})

	When("the line is a transaction identifier", func() {
		BeforeEach(func() {
			line = "No 12345/67890"
		})

		It("should reject the line", func() {
			Expect(noise).To(BeTrue())
		})
	})

	When("the line contains a date", func() {
		BeforeEach(func() {
			line = "12/03/2024"
		})

		It("should reject the line", func() {
			Expect(noise).To(BeTrue())
		})
	})

	When("the line contains a clock time", func() {
		BeforeEach(func() {
			line = "Jam 14:35"
		})

		It("should reject the line", func() {
			Expect(noise).To(BeTrue())
		})
	})

	When("the line is an address header", func() {
		BeforeEach(func() {
			line = "Jl. Sudirman No 1 Jakarta"
		})

		It("should reject the line", func() {
			Expect(noise).To(BeTrue())
		})
	})

	When("the line is a payment method", func() {
		BeforeEach(func() {
			line = "DEBIT BCA"
		})

		It("should reject the line", func() {
			Expect(noise).To(BeTrue())
		})
	})

	When("the line is a courtesy footer", func() {
		BeforeEach(func() {
			line = "Terima Kasih"
		})

		It("should reject the line", func() {
			Expect(noise).To(BeTrue())
		})
	})

	When("the line is a change line", func() {
		BeforeEach(func() {
			line = "Kembali 5.000"
		})

		It("should reject the line", func() {
			Expect(noise).To(BeTrue())
		})
	})

	When("the line is a plain total", func() {
		BeforeEach(func() {
			line = "Total : Rp 14.000"
		})

		It("should keep the line", func() {
			Expect(noise).To(BeFalse())
		})
	})
})
