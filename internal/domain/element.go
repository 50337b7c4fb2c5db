// Package domain contains the core records of the ReelRate catalog:
// elements (movies), the tags attached to them, the rates users give
// them, and the user accounts themselves.
package domain

// Element is a catalog item that can carry tags and receive rates.
type Element struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	IsDeleted bool   `json:"is_deleted,omitempty"`
}
