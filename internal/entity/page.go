package entity

// Page is one window of a listing plus the metadata needed to request the
// next one. Items holds at most PageSize entities in the provider's natural
// order; TotalCount covers every entity matching the query, not just this
// window.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
}
