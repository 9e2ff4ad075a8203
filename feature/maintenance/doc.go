// Package maintenance records machine maintenance events and keeps the
// supply stock in step with them.
//
// Every write persists the event first and then hands the change to the
// stock engine (core/reconcile). The engine's report travels back in the
// response, so a caller sees which supplies could not be taken from stock
// without the event itself being lost.
//
// # HTTP Endpoints
//
//   - GET /maintenance : List events (?machine_id=, ?type=, ?limit=).
//   - POST /maintenance : Record an event; supplies are consumed.
//   - GET /maintenance/:id : Get one event.
//   - PATCH /maintenance/:id : Partial update; stock moves by the net difference.
//   - DELETE /maintenance/:id : Delete an event (restocks only when configured).
package maintenance
