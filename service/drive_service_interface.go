package service

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	// UploadInvoicePDF uploads an exported invoice PDF to the backup folder
	// and returns the Drive file id.
	UploadInvoicePDF(name string, data []byte) (string, error)
}
