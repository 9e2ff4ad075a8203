// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation protecting every endpoint.
//   - rayid: a RayID per request, exposed in the X-Ray-ID header and used by
//     logger.WithRayID to correlate log lines.
package middleware
