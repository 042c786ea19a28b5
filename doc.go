// Package lodgedoc composes lodge documents (meeting minutes, notices,
// certificates and invitations) from editable region templates, per-kind
// style settings and a data context. The root package re-exports the common
// entry points; the pkg/ subpackages hold the token model, editor, style
// model, composer, regenerator, preview bridge and HTTP API.
package lodgedoc
