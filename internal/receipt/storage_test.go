package receipt

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage Storage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		var (
			filename  string
			data      []byte
			savedPath string
			err       error
		)

		BeforeEach(func() {
			filename = "receipt.jpg"
			data = []byte("receipt image bytes")
		})

		JustBeforeEach(func() {
			savedPath, err = storage.Save(filename, data)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the saved filename", func() {
				Expect(savedPath).To(Equal(filename))
			})

			It("should write the file to disk", func() {
				Expect(filepath.Join(tmpDir, filename)).To(BeAnExistingFile())
			})
		})

		When("the filename carries path segments", func() {
			BeforeEach(func() {
				filename = "../../etc/receipt.jpg"
			})

			It("should flatten the name into the storage directory", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(savedPath).To(Equal("receipt.jpg"))
				Expect(filepath.Join(tmpDir, "receipt.jpg")).To(BeAnExistingFile())
			})
		})
	})

	Describe("Get", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := storage.Save("receipt.jpg", []byte("receipt image bytes"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return its contents", func() {
				data, err := storage.Get("receipt.jpg")
				Expect(err).NotTo(HaveOccurred())
				Expect(data).To(Equal([]byte("receipt image bytes")))
			})
		})

		When("the file does not exist", func() {
			It("should return an error", func() {
				_, err := storage.Get("missing.jpg")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Delete", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := storage.Save("receipt.jpg", []byte("receipt image bytes"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove it", func() {
				Expect(storage.Delete("receipt.jpg")).To(Succeed())
				Expect(filepath.Join(tmpDir, "receipt.jpg")).NotTo(BeAnExistingFile())
			})
		})

		When("the file does not exist", func() {
			It("should return an error", func() {
				Expect(storage.Delete("missing.jpg")).NotTo(Succeed())
			})
		})
	})
})
