// Package storage defines the repository interfaces for persisting tenders,
// company experiences, and job checkpoints, together with the serialization
// helpers shared by backend implementations.
package storage
