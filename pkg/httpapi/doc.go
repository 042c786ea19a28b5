// Package httpapi exposes the templating engine over HTTP: variable
// catalogs, stored document settings, preview, PDF render and body
// regeneration. The contract is served at {base}/openapi.json.
//
// Regeneration is destructive and answers 409 unless the request carries
// "confirm": true.
package httpapi
