package entity

// DateRange is an inclusive calendar-date range over the submission date
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ClaimFilters narrows the claim collection before sorting and pagination.
// Search matches id, policyholder name and email case-insensitively; when it
// is set it decides inclusion on its own and PolicyholderName is ignored.
type ClaimFilters struct {
	Search           string      `json:"search,omitempty"`
	Status           ClaimStatus `json:"status,omitempty"`
	DateRange        *DateRange  `json:"dateRange,omitempty"`
	PolicyholderName string      `json:"policyholderName,omitempty"`
}

// SortDirection orders a sorted field ascending or descending
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortParams selects the claim field and direction to sort by
type SortParams struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// PaginationParams selects a 1-based page of a fixed size
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// ClaimsPage is one displayed page plus the pre-slice match count
type ClaimsPage struct {
	Claims []Claim `json:"claims"`
	Total  int     `json:"total"`
}
