package utils

// Application constants
const (
	// Application name
	AppName = "ebook-store"

	// Minimum password length
	MinPasswordLength = 6

	// Maximum cover image size (5MB)
	MaxImageSize = 5 * 1024 * 1024

	// Maximum PDF size (50MB)
	MaxPDFSize = 50 * 1024 * 1024

	// Longest sanitized base name kept for uploads
	MaxUploadBaseName = 50
)

// Error messages
const (
	ErrInvalidCredentials = "Invalid email or password"
	ErrDuplicateEmail     = "Email already exists"
	ErrUnauthorized       = "Please login for access"
	ErrInvalidToken       = "Invalid or expired token"
	ErrForbidden          = "Access forbidden"
	ErrInvalidStatus      = "Invalid status"
	ErrUnsupportedType    = "Unsupported file type"
	ErrImageTooLarge      = "Image exceeds 5MB limit"
	ErrPDFTooLarge        = "PDF exceeds 50MB limit"
	ErrFileTooLarge       = "File too large (max 50MB)"
	ErrPasswordTooShort   = "Password must be at least 6 characters"
	ErrInternalServer     = "Internal server error"
	ErrBookNumberTaken    = "Book number already taken, please retry"
	ErrTooManyRequests    = "Too many requests, please slow down"
)

// Success messages
const (
	MsgRegisterSuccess = "Successfully registered"
	MsgProfileUpdated  = "Profile updated"
	MsgPasswordChanged = "Password changed successfully"
	MsgUploadSuccess   = "File uploaded successfully"
	MsgDeleteSuccess   = "Deleted successfully"
)
