package apierror

// Error type URIs following the urn:vitaltrack:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:vitaltrack:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:vitaltrack:error:not_found"

	// TypeConflict indicates a resource conflict (409)
	TypeConflict = "urn:vitaltrack:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:vitaltrack:error:rate_limit"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:vitaltrack:error:unauthorized"

	// TypeForbidden indicates insufficient permissions (403)
	TypeForbidden = "urn:vitaltrack:error:forbidden"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:vitaltrack:error:internal"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:vitaltrack:error:bad_request"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation   = "Validation Error"
	TitleNotFound     = "Resource Not Found"
	TitleConflict     = "Resource Conflict"
	TitleRateLimit    = "Rate Limit Exceeded"
	TitleUnauthorized = "Authentication Required"
	TitleForbidden    = "Permission Denied"
	TitleInternal     = "Internal Server Error"
	TitleBadRequest   = "Bad Request"
)
