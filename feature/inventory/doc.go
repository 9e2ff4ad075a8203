// Package inventory exposes the product ledger over HTTP and keeps dated
// stock snapshots in the storage bucket.
//
// # HTTP Endpoints
//
//   - GET /inventory : List products.
//   - GET /inventory/:name : Get one product.
//   - POST /inventory/:name/adjust : Book a delivery or write-off ({"delta": "20"}).
//   - POST /inventory/snapshot : Write snapshots/stock_<unix nanos>.json and prune old ones.
//   - GET /inventory/snapshot/latest : Download the newest snapshot.
package inventory
