// Package reindex refreshes the cached keyword signatures of stored
// experiences after the extraction vocabulary changes.
//
// This package supports batch processing of experiences, progress tracking,
// and retry logic with exponential backoff for storage writes.
package reindex
