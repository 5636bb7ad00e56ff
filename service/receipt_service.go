package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"pos-billing/models"
	"pos-billing/utils"
)

// Receipt roll dimensions in mm (80mm thermal paper).
const (
	receiptWidth  = 80.0
	receiptHeight = 297.0
	receiptMargin = 5.0
)

// ReceiptService renders receipts to PDF and drops them into the print spool
// directory, where the print agent picks them up.
type ReceiptService struct {
	spoolDir string
	logoPNG  []byte
}

// NewReceiptService creates a ReceiptService. logoPath may be empty; a logo
// that fails to load is skipped with a warning, never fatal.
func NewReceiptService(spoolDir, logoPath string) *ReceiptService {
	s := &ReceiptService{spoolDir: spoolDir}

	if logoPath != "" {
		logo, err := PrepareLogo(logoPath)
		if err != nil {
			log.Printf("⚠️ ReceiptService: failed to prepare logo from %s: %v", logoPath, err)
		} else {
			s.logoPNG = logo
		}
	}

	return s
}

// pdfAmount formats a paise amount for the PDF body. The core PDF fonts
// cannot render the rupee sign, so it becomes "Rs ".
func pdfAmount(paise int64) string {
	return strings.Replace(utils.FormatRupees(paise), "₹", "Rs ", 1)
}

// PrintReceipt renders the receipt and writes it to the spool directory.
func (s *ReceiptService) PrintReceipt(ctx context.Context, receipt *models.Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.spoolDir, 0755); err != nil {
		return fmt.Errorf("failed to create spool directory: %w", err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: receiptWidth, Ht: receiptHeight},
	})
	pdf.SetMargins(receiptMargin, receiptMargin, receiptMargin)
	pdf.AddPage()

	if s.logoPNG != nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(s.logoPNG))
		pdf.ImageOptions("logo", receiptWidth/2-15, receiptMargin, 30, 0, true, opts, 0, "")
		pdf.Ln(4)
	}

	title := "TAX INVOICE"
	if receipt.Type == models.TransactionTypeEstimate {
		title = "ESTIMATE"
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 4, fmt.Sprintf("No: %d", receipt.TransactionNo), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, fmt.Sprintf("Date: %s", receipt.BillingDate.Format("02 Jan 2006 15:04")), "", 1, "L", false, 0, "")
	if receipt.CustomerName != "" {
		pdf.CellFormat(0, 4, fmt.Sprintf("Customer: %s", receipt.CustomerName), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// Item table: name, qty x price, line total.
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(34, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(18, 5, "Qty x Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(18, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range receipt.Items {
		pdf.CellFormat(34, 5, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(18, 5, fmt.Sprintf("%s x %s", item.Quantity.String(), pdfAmount(item.Price)), "", 0, "R", false, 0, "")
		pdf.CellFormat(18, 5, pdfAmount(item.TotalPrice), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(52, 5, "Subtotal", "T", 0, "L", false, 0, "")
	pdf.CellFormat(18, 5, pdfAmount(receipt.Subtotal), "T", 1, "R", false, 0, "")
	pdf.CellFormat(52, 5, "Grand Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(18, 5, fmt.Sprintf("Rs %d", receipt.GrandTotal), "", 1, "R", false, 0, "")

	filename := fmt.Sprintf("receipt_%d_%d.pdf", receipt.TransactionNo, time.Now().UnixMilli())
	outPath := filepath.Join(s.spoolDir, filename)
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}

	log.Printf("✅ PrintReceipt: spooled %s", outPath)
	return nil
}
