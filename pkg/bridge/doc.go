// Package bridge connects composed documents to a rendering collaborator.
//
// A Bridge previews (HTML) and renders (PDF). LocalBridge composes in
// process and delegates PDF conversion to an injected Converter; HTTPBridge
// posts to an external service. Scheduler debounces live previews so that
// only the latest edit's result is applied.
package bridge
