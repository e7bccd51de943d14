// Package failure defines the error markers shared by the fetcher, parser,
// catalog loader and output writer.
//
// Every fatal condition is wrapped with one of the sentinel markers through
// Wrap so the CLI can classify it with errors.Is while the message keeps the
// component and operation that failed. Recoverable conditions never become
// errors; they are logged where they occur.
package failure
