// Package sqlite provides the file-backed SQLite implementation of the
// storage interfaces defined in the internal/store package. It uses the
// pure-Go modernc.org/sqlite driver, so no cgo toolchain is needed.
package sqlite
