package receipt

import (
	"bytes"
	"encoding/csv"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

var _ = Describe("ExportReport", func() {
	var (
		db      *mockDB
		service *Service
	)

	BeforeEach(func() {
		db = newMockDB()
		db.receipts["a"] = &Receipt{
			ID:         "a",
			Filename:   "a_warung.jpg",
			UploadDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Items: []LineItem{
				{Name: "INDOMIE GORENG", Quantity: 2, UnitPrice: 7000, Subtotal: 14000},
				{Name: "AQUA 600ML", Quantity: 1, UnitPrice: 4000, Subtotal: 4000},
			},
			TotalAmount: 18000,
		}
		db.receipts["b"] = &Receipt{
			ID:         "b",
			Filename:   "b_tagihan.png",
			UploadDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			Items: []LineItem{
				{Name: "Tagihan", Quantity: 1, UnitPrice: 150000, Subtotal: 150000},
			},
			TotalAmount: 150000,
		}
		service = NewService(db, newMockEngine(), newMockStorage())
	})

	When("exporting CSV", func() {
		It("should emit a header and one row per line item, oldest first", func() {
			data, contentType, err := service.ExportReport(FormatCSV)
			Expect(err).NotTo(HaveOccurred())
			Expect(contentType).To(Equal("text/csv"))

			records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(4))
			Expect(records[0]).To(Equal([]string{"Date", "File", "Item", "Quantity", "Price (IDR)"}))
			Expect(records[1]).To(Equal([]string{"2024-02-10", "b_tagihan.png", "Tagihan", "1", "150000"}))
			Expect(records[2]).To(Equal([]string{"2024-03-05", "a_warung.jpg", "INDOMIE GORENG", "2", "14000"}))
			Expect(records[3]).To(Equal([]string{"2024-03-05", "a_warung.jpg", "AQUA 600ML", "1", "4000"}))
		})

		It("should default to CSV when no format is given", func() {
			_, contentType, err := service.ExportReport("")
			Expect(err).NotTo(HaveOccurred())
			Expect(contentType).To(Equal("text/csv"))
		})
	})

	When("exporting XLSX", func() {
		It("should emit a readable workbook", func() {
			data, contentType, err := service.ExportReport(FormatXLSX)
			Expect(err).NotTo(HaveOccurred())
			Expect(contentType).To(Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))

			f, err := excelize.OpenReader(bytes.NewReader(data))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			rows, err := f.GetRows("Expenses")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(4))
			Expect(rows[0]).To(Equal([]string{"Date", "File", "Item", "Quantity", "Price (IDR)"}))
			Expect(rows[1][2]).To(Equal("Tagihan"))
		})
	})

	When("the format is unknown", func() {
		It("should return an error", func() {
			_, _, err := service.ExportReport("pdf")
			Expect(err).To(HaveOccurred())
		})
	})

	When("listing fails", func() {
		BeforeEach(func() {
			db.listErr = errors.New("db closed")
		})

		It("should return the error", func() {
			_, _, err := service.ExportReport(FormatCSV)
			Expect(err).To(HaveOccurred())
		})
	})
})
