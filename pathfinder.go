// Package pathfinder provides a local file-discovery engine. Given a query
// term it walks a set of root directories, matches file names and text
// content, and returns the matches ranked by relevance.
//
// This package contains domain types, interfaces, and the pure parts of the
// engine (query parsing, scoring, aggregation) following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, text/, bloom/, toml/).
package pathfinder
