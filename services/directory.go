package services

import (
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"society-portal-server/models"
)

// VendorSummary is one directory entry, built from a vendor's
// representative availability row with storage quirks normalized away.
type VendorSummary struct {
	VendorID   string             `json:"vendorID"`
	Name       string             `json:"name"`
	Mobile     string             `json:"mobile"`
	Area       string             `json:"area"`
	Societies  []string           `json:"societies"`
	Services   []string           `json:"services"`
	Kind       models.ListingKind `json:"kind"`
	IsVerified bool               `json:"isVerified"`
	LatestDate time.Time          `json:"latestDate"`
}

// DirectoryFilter combines conjunctively: a vendor must match every
// supplied predicate. Empty fields mean no constraint.
type DirectoryFilter struct {
	Area    string `json:"area"`
	Society string `json:"society"`
	Service string `json:"service"`
	Query   string `json:"q"`
}

// NormalizeSocieties converts either stored representation of society
// membership — a JSON array or a braced/comma-delimited string — into an
// ordered, de-duplicated slice. Nothing past this function branches on
// representation.
func NormalizeSocieties(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var parts []string
	if strings.HasPrefix(raw, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			parts = arr
		}
	}
	if parts == nil {
		trimmed := strings.Trim(raw, "{}")
		parts = strings.Split(trimmed, ",")
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p == "" {
			continue
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// ExpandServices resolves the stored service value into the effective
// service list. The literal "both" (any case) means cleaning and cooking.
func ExpandServices(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	if strings.EqualFold(raw, "both") {
		return []string{"cleaning", "cooking"}
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// MatchVendor applies the filter with AND semantics.
func MatchVendor(v VendorSummary, f DirectoryFilter) bool {
	if f.Area != "" && v.Area != f.Area {
		return false
	}
	if f.Society != "" {
		ok := slices.ContainsFunc(v.Societies, func(s string) bool {
			return strings.EqualFold(s, f.Society)
		})
		if !ok {
			return false
		}
	}
	if f.Service != "" {
		want := strings.ToLower(strings.TrimSpace(f.Service))
		ok := strings.EqualFold(f.Service, "both") && len(v.Services) > 1
		if !ok {
			ok = slices.Contains(v.Services, want)
		}
		if !ok {
			return false
		}
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		hay := strings.ToLower(strings.Join(append([]string{v.Name, v.Area, strings.Join(v.Services, " ")}, v.Societies...), " "))
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

// FilterVendors keeps the vendors matching every supplied predicate,
// preserving input order.
func FilterVendors(list []VendorSummary, f DirectoryFilter) []VendorSummary {
	out := make([]VendorSummary, 0, len(list))
	for _, v := range list {
		if MatchVendor(v, f) {
			out = append(out, v)
		}
	}
	return out
}
