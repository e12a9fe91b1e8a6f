package usecase

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"claimdesk-service/internal/domain/entity"
)

// BuildClaimsPage filters, sorts and paginates an in-memory claim collection.
// It is a pure function: the input slice is not modified and the same inputs
// always produce the same page. Total is the filtered count before slicing,
// so callers can derive the page count.
func BuildClaimsPage(claims []entity.Claim, filters entity.ClaimFilters, sortParams entity.SortParams, pagination entity.PaginationParams) entity.ClaimsPage {
	filtered := make([]entity.Claim, 0, len(claims))
	for _, claim := range claims {
		if claimMatches(claim, filters) {
			filtered = append(filtered, claim)
		}
	}

	sortClaims(filtered, sortParams)

	page := pagination.Page
	if page < 1 {
		page = 1
	}
	pageSize := pagination.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return entity.ClaimsPage{
		Claims: filtered[start:end],
		Total:  len(filtered),
	}
}

// claimMatches applies the filters in a fixed order: status, then date range,
// then search, then policyholder name. Search, when set, decides inclusion on
// its own and the policyholder name filter is skipped entirely. That
// precedence is kept on purpose for parity with the dashboard this service
// replaces; combining the two would change which claims users see.
func claimMatches(claim entity.Claim, filters entity.ClaimFilters) bool {
	if filters.Status != "" && claim.Status != filters.Status {
		return false
	}

	if filters.DateRange != nil && filters.DateRange.Start != "" && filters.DateRange.End != "" {
		submitted, ok := parseCalendarDate(claim.SubmissionDate)
		start, startOK := parseCalendarDate(filters.DateRange.Start)
		end, endOK := parseCalendarDate(filters.DateRange.End)
		if ok && startOK && endOK {
			// inclusive on both ends, compared as calendar dates
			if submitted.Before(start) || submitted.After(end) {
				return false
			}
		}
	}

	if filters.Search != "" {
		term := strings.ToLower(filters.Search)
		return strings.Contains(strings.ToLower(claim.ID), term) ||
			strings.Contains(strings.ToLower(claim.PolicyholderName), term) ||
			strings.Contains(strings.ToLower(claim.PolicyholderEmail), term)
	}

	if filters.PolicyholderName != "" {
		return strings.Contains(
			strings.ToLower(claim.PolicyholderName),
			strings.ToLower(filters.PolicyholderName),
		)
	}

	return true
}

// parseCalendarDate accepts the two date encodings the backend holds: bare
// ISO dates and full RFC 3339 timestamps. The time of day is discarded.
func parseCalendarDate(value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// sortClaims orders the slice by the configured field. String fields use
// locale-aware collation, amount compares numerically, and any other field
// leaves the relative order unchanged. The sort is stable.
func sortClaims(claims []entity.Claim, sortParams entity.SortParams) {
	if sortParams.Field == "" {
		return
	}

	collator := collate.New(language.English)

	sort.SliceStable(claims, func(i, j int) bool {
		cmp := compareByField(collator, claims[i], claims[j], sortParams.Field)
		if sortParams.Direction == entity.SortDesc {
			cmp = -cmp
		}
		return cmp < 0
	})
}

func compareByField(collator *collate.Collator, a, b entity.Claim, field string) int {
	if field == "amount" {
		return a.Amount.Cmp(b.Amount)
	}

	av, aOK := stringField(a, field)
	bv, bOK := stringField(b, field)
	if aOK && bOK {
		return collator.CompareString(av, bv)
	}

	return 0
}

// stringField maps a sort field name to the claim's string attribute
func stringField(claim entity.Claim, field string) (string, bool) {
	switch field {
	case "id":
		return claim.ID, true
	case "policyNumber":
		return claim.PolicyNumber, true
	case "policyholderName":
		return claim.PolicyholderName, true
	case "policyholderEmail":
		return claim.PolicyholderEmail, true
	case "policyholderPhone":
		return claim.PolicyholderPhone, true
	case "incidentDate":
		return claim.IncidentDate, true
	case "submissionDate":
		return claim.SubmissionDate, true
	case "status":
		return string(claim.Status), true
	case "claimType":
		return claim.ClaimType, true
	case "description":
		return claim.Description, true
	case "notes":
		return claim.Notes, true
	case "assignedTo":
		return claim.AssignedTo, true
	}
	return "", false
}
