// Package internal contains the core implementation packages for cmsforge.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the cmsforge CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - datatree: schema-driven request data trees with defaults and merging
//   - acquire: acquisition of data from requester to requested component
//   - process: force-create, preset, and callback passes over request data
//   - generator: the component generator set and its type registry
//   - collection: the deduplicated result graph of a resolution run
//   - collector: the recursive request-resolution engine
//   - framework: the target CMS framework's metadata catalog
//   - emit: rendering collected components into source files
//   - request: loading authored request files
//   - config: configuration management and validation
//   - watcher: request file monitoring with debouncing
//
// # Inter-Package Communication
//
// The collector orchestrates a resolution run: it loads request schemas from
// the generator registry, drives acquire and process over each request node,
// and records every resulting instance in a collection. Emitters consume the
// finished collection and never mutate it.
package internal
