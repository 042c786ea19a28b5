// Package catalog provides the variable catalogs offered to template authors:
// ordered, labelled groups of variable keys per document kind. Catalogs come
// from bundled JSON/YAML files or from a remote HTTP endpoint, and a Tracker
// keeps only the latest requested catalog.
package catalog
