package constants

import "time"

// Handler constants
const (
	// MaxSceneBodyBytes caps the size of a scene posted to the layout endpoint
	MaxSceneBodyBytes = 1 << 20

	// MaxRenderBodyBytes caps the size of a photo posted to the render endpoint
	MaxRenderBodyBytes = 64 << 20

	// RequestTimeout is the per-request timeout of the web server
	RequestTimeout = 2 * time.Minute

	// ShutdownTimeout is how long the server waits for in-flight requests
	ShutdownTimeout = 10 * time.Second
)
