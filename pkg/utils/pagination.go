package utils

import (
	"fmt"
	"sort"
)

// PageItem is one entry of a pagination control: a page number or an ellipsis
type PageItem struct {
	Type   string `json:"type"`
	Number int    `json:"number,omitempty"`
	Key    string `json:"key"`
}

// PaginationItems builds the page-number window for a pagination control:
// first page, last page, current page and its direct neighbors, with an
// ellipsis wherever pages are skipped.
func PaginationItems(currentPage, totalPages int) []PageItem {
	if totalPages < 1 {
		return nil
	}

	show := map[int]bool{
		1:           true,
		totalPages:  true,
		currentPage: true,
	}
	if currentPage > 1 {
		show[currentPage-1] = true
	}
	if currentPage < totalPages {
		show[currentPage+1] = true
	}

	pages := make([]int, 0, len(show))
	for page := range show {
		if page >= 1 && page <= totalPages {
			pages = append(pages, page)
		}
	}
	sort.Ints(pages)

	items := make([]PageItem, 0, len(pages)*2)
	prev := 0
	for _, page := range pages {
		if page-prev > 1 {
			items = append(items, PageItem{
				Type: "ellipsis",
				Key:  fmt.Sprintf("ellipsis-%d-%d", prev, page),
			})
		}
		items = append(items, PageItem{
			Type:   "page",
			Number: page,
			Key:    fmt.Sprintf("page-%d", page),
		})
		prev = page
	}

	return items
}
