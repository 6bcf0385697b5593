// Package main implements the flashdeck command: the HTTP server for
// managing and reviewing flashcards, plus schema migration and CSV
// import/export commands that share its configuration.
package main

func main() {
	Execute()
}
