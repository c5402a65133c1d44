// Package c2cgpx exports camptocamp documents as GPX waypoints.
// It enumerates documents matching a search filter, fetches each record,
// renders its localized text from camptocamp markup to HTML, and writes
// one waypoint per document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goldmark/, etree/).
package c2cgpx
