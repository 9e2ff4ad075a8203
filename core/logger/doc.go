// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for development (console, debug) and
// production (json) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID extracts the RayID set by the rayid middleware and attaches it to
// the log entry so every line about one request (including stock adjustments
// made on its behalf) can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
