// Package regenerate rebuilds a document body from structured form fields.
//
// Regeneration is destructive: it replaces the body with the kind's fixed
// skeleton and the field values, dropping manual edits. Session.Apply always
// asks a Confirmer first.
package regenerate
