package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"pos-billing/models"
)

// PDFService exports saved transactions as A4 invoice PDFs by printing the
// local invoice render endpoint with headless Chrome.
type PDFService struct {
	baseURL   string // Base URL of this server (e.g., "http://localhost:8080")
	exportDir string
	drive     DriveServiceInterface // optional backup target, may be nil
}

// NewPDFService creates a new PDFService. drive may be nil to disable the
// Drive backup of exports.
func NewPDFService(baseURL, exportDir string, drive DriveServiceInterface) *PDFService {
	return &PDFService{
		baseURL:   baseURL,
		exportDir: exportDir,
		drive:     drive,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// ExportPDF renders the invoice for a saved transaction and writes it to the
// export directory, then backs it up to Drive when configured. A backup
// failure is logged but does not fail the export.
func (s *PDFService) ExportPDF(ctx context.Context, billingID string, txType models.TransactionType) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/billing/invoices/%s/render?type=%s", s.baseURL, billingID, txType)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}

	if err := os.MkdirAll(s.exportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("invoice_%s.pdf", billingID)
	outPath := filepath.Join(s.exportDir, filename)
	if err := os.WriteFile(outPath, pdfBuf, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	log.Printf("✅ ExportPDF: wrote %s", outPath)

	if s.drive != nil {
		if _, err := s.drive.UploadInvoicePDF(filename, pdfBuf); err != nil {
			log.Printf("⚠️ ExportPDF: Drive backup failed for %s: %v", filename, err)
		}
	}

	return nil
}
