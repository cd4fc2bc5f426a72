package utils

// Application constants
const (
	// Application name
	AppName = "ZapKash Vendor Console"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Default database host
	DefaultDBHost = "localhost"

	// Default database port
	DefaultDBPort = "5432"

	// Default database name
	DefaultDBName = "vendor_console"

	// Default database user
	DefaultDBUser = "postgres"

	// Default database password
	DefaultDBPassword = "postgres"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Default per-unit QR generation rate, before tax
	DefaultQRUnitRate = "2"

	// Default directory for chunked export parts
	DefaultExportDir = "exports"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum campaign title length
	MinTitleLength = 3

	// Maximum campaign title length
	MaxTitleLength = 100
)

// Error messages
const (
	// Authentication errors
	ErrInvalidToken   = "Invalid or expired token"
	ErrSessionExpired = "Session expired, please login again"
	ErrUnauthorized   = "Unauthorized access"
	ErrForbidden      = "Access forbidden"

	// Validation errors
	ErrInvalidTitle      = "Campaign title must be between 3 and 100 characters"
	ErrInvalidPlanType   = "Plan type must be prepaid or postpaid"
	ErrInvalidVoucher    = "Voucher type must be none, digital_voucher or printed_qr"
	ErrInvalidPagination = "Invalid pagination parameters"
	ErrCampaignNotDraft  = "Only pending campaigns can be edited"

	// Database errors
	ErrRecordNotFound = "Record not found"
	ErrDBConnection   = "Database connection error"

	// Server errors
	ErrInternalServer     = "Internal server error"
	ErrServiceUnavailable = "Service unavailable"
)

// Success messages
const (
	MsgCreateSuccess = "Created successfully"
	MsgUpdateSuccess = "Updated successfully"
	MsgDeleteSuccess = "Deleted successfully"
)
