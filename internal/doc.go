// Package internal contains the implementation packages of mcsfix.
//
// # Package Organization
//
//   - types: the in-memory working copy of a source file
//   - scanner: discovery of candidate files under a project root
//   - header: canonical MCS file headers
//   - border: section marker geometry, the section state machine and body indentation
//   - urls: canonical repo and docs header lines
//   - braces: repair of test declarations missing their opening brace
//   - names: PascalCase component segments in test titles
//   - pipeline: ordered pass execution, atomic write-back and run reports
//   - watcher: fsnotify monitoring with debouncing
//   - config: Viper-backed configuration and validation
//   - logging: slog-backed structured logging
//   - errors: the structured error taxonomy
//   - version: build identity
//   - testutils: fixtures shared by the package tests
//
// Every pass implements pipeline.Pass and is idempotent: applying it to its
// own output changes nothing.
package internal
