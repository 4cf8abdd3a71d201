// internal/app/system/limits/limits.go
package limits

// Request body size limits. These guard against memory exhaustion from
// oversized requests; the upload middleware rejects anything larger with a
// 400 before the handler runs.
const (
	// MaxJSONBodySize is the maximum size for JSON request bodies.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// DefaultMaxUploadSize is the default per-file cap for multipart
	// uploads when upload_max_bytes is not configured.
	DefaultMaxUploadSize = 25 << 20 // 25 MB

	// MaxUploadFiles is the most files accepted by /upload/multiple.
	MaxUploadFiles = 10
)
