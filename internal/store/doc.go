// Package store defines the persistence contract for flashcards and the
// transaction helper shared by its implementations. Concrete stores live
// under internal/platform.
package store
