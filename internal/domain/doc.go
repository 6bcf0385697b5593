// Package domain contains the flashcard entity and the errors shared by
// every layer of the application. It has no dependency on storage or
// transport.
package domain
