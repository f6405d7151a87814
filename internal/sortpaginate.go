package internal

import "sort"

// DefaultPageSize is the number of conversations per page
const DefaultPageSize = 25

// Page is one slice of a paginated list
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	Pages    int `json:"pages"`
	PageSize int `json:"pageSize"`
}

// SortConversations returns a copy ordered newest first by update_time,
// falling back to create_time
func SortConversations(conversations []Conversation) []Conversation {
	out := append([]Conversation(nil), conversations...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastActivity() > out[j].LastActivity()
	})
	return out
}

// Paginate returns the requested page, clamping page into [1, pages]
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page[T]{
		Items:    items[start:end],
		Total:    total,
		Page:     page,
		Pages:    pages,
		PageSize: pageSize,
	}
}
