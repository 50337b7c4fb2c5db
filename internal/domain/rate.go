package domain

// Rate is a user's score for an element. At most one active rate exists
// per (author, element) pair; superseded rates are soft-deleted.
type Rate struct {
	ID        int64 `json:"id"`
	ElementID int64 `json:"element_id"`
	Author    int64 `json:"author"`
	Value     int   `json:"value"`
	IsDeleted bool  `json:"is_deleted,omitempty"`
}
