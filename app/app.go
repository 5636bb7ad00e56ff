package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"pos-billing/app/controller"
	"pos-billing/app/router"
	"pos-billing/billing"
	"pos-billing/db"
	"pos-billing/gateway"
	"pos-billing/repository"
	"pos-billing/service"
)

// Initialize initializes the application. Returns whether a database
// connection was opened so the caller knows to close it on shutdown.
func Initialize() (bool, error) {
	// Remote transaction service
	gatewayURL := os.Getenv("GATEWAY_BASE_URL")
	if gatewayURL == "" {
		return false, fmt.Errorf("GATEWAY_BASE_URL environment variable is not set")
	}
	gatewayClient := gateway.NewClient(gatewayURL)

	// Draft autosave is optional: without a database drafts live in memory only
	var draftRepo repository.DraftRepositoryInterface
	usesDB := os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_HOST") != ""
	if usesDB {
		if err := db.InitDB(); err != nil {
			return false, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo := repository.NewDraftRepository()
		if err := repo.EnsureSchema(context.Background()); err != nil {
			return true, fmt.Errorf("failed to ensure draft schema: %w", err)
		}
		draftRepo = repo
	} else {
		log.Printf("⚠️ No database configured, draft autosave disabled")
	}

	// Receipt printing (PDF spool)
	spoolDir := os.Getenv("PRINT_SPOOL_DIR")
	if spoolDir == "" {
		spoolDir = "./spool"
	}
	receiptService := service.NewReceiptService(spoolDir, os.Getenv("LOGO_PATH"))

	// Drive backup is optional
	var driveService service.DriveServiceInterface
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	folderID := os.Getenv("DRIVE_BACKUP_FOLDER_ID")
	if credentialsPath != "" && folderID != "" {
		ds, err := service.NewDriveService(credentialsPath, folderID)
		if err != nil {
			return usesDB, fmt.Errorf("failed to initialize Drive service: %w", err)
		}
		driveService = ds
	} else {
		log.Printf("⚠️ Drive backup not configured, exported PDFs stay local only")
	}

	// Invoice PDF export renders this server's own invoice page
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}
	exportDir := os.Getenv("EXPORT_DIR")
	if exportDir == "" {
		exportDir = "./exports"
	}
	pdfService := service.NewPDFService(baseURL, exportDir, driveService)

	// Draft workspaces
	var draftStore billing.DraftStore
	if draftRepo != nil {
		draftStore = draftRepo
	}
	manager := billing.NewManager(gatewayClient, receiptService, pdfService, draftStore)

	// Create controllers
	controllers := &router.Controllers{
		Billing:     controller.NewBillingController(manager, gatewayClient, draftRepo),
		Fulfillment: controller.NewFulfillmentController(manager),
		Invoice:     controller.NewInvoiceController(gatewayClient),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return usesDB, nil
}
