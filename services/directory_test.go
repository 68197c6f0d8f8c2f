package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSocieties(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["Ashok Gardens","Dosti Flamingos"]`, []string{"Ashok Gardens", "Dosti Flamingos"}},
		{"braced string", `{Ashok Gardens,Dosti Flamingos}`, []string{"Ashok Gardens", "Dosti Flamingos"}},
		{"plain comma string", `Ashok Gardens, Dosti Flamingos`, []string{"Ashok Gardens", "Dosti Flamingos"}},
		{"single value", `Kalpataru Habitat`, []string{"Kalpataru Habitat"}},
		{"duplicates dropped", `{A,B,A}`, []string{"A", "B"}},
		{"empty", ``, []string{}},
		{"blank entries dropped", `{A,,B, }`, []string{"A", "B"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeSocieties(tc.raw))
		})
	}
}

func TestExpandServices(t *testing.T) {
	assert.Equal(t, []string{"cleaning", "cooking"}, ExpandServices("both"))
	assert.Equal(t, []string{"cleaning", "cooking"}, ExpandServices("Both"))
	assert.Equal(t, []string{"cleaning", "cooking"}, ExpandServices("BOTH"))
	assert.Equal(t, []string{"cleaning"}, ExpandServices("Cleaning"))
	assert.Equal(t, []string{"cooking", "driving"}, ExpandServices("cooking, driving"))
	assert.Equal(t, []string{}, ExpandServices(""))
}

func vendorFixture() VendorSummary {
	return VendorSummary{
		VendorID:  "V1",
		Name:      "Sunita Devi",
		Area:      "Parel",
		Societies: []string{"Ashok Gardens", "Dosti Flamingos"},
		Services:  ExpandServices("both"),
	}
}

func TestMatchVendorAreaExact(t *testing.T) {
	v := vendorFixture()

	assert.True(t, MatchVendor(v, DirectoryFilter{Area: "Parel"}))
	assert.False(t, MatchVendor(v, DirectoryFilter{Area: "Worli"}))
}

func TestMatchVendorSocietyEitherRepresentation(t *testing.T) {
	fromArray := vendorFixture()
	fromArray.Societies = NormalizeSocieties(`["Ashok Gardens","Dosti Flamingos"]`)

	fromBraced := vendorFixture()
	fromBraced.Societies = NormalizeSocieties(`{Ashok Gardens,Dosti Flamingos}`)

	f := DirectoryFilter{Society: "Ashok Gardens"}
	assert.True(t, MatchVendor(fromArray, f))
	assert.True(t, MatchVendor(fromBraced, f))
	assert.False(t, MatchVendor(fromArray, DirectoryFilter{Society: "Lodha Park"}))
}

func TestMatchVendorServiceBoth(t *testing.T) {
	v := vendorFixture() // stored value "both"

	assert.True(t, MatchVendor(v, DirectoryFilter{Service: "both"}))
	assert.True(t, MatchVendor(v, DirectoryFilter{Service: "cleaning"}))
	assert.True(t, MatchVendor(v, DirectoryFilter{Service: "cooking"}))
	assert.False(t, MatchVendor(v, DirectoryFilter{Service: "driving"}))

	single := vendorFixture()
	single.Services = ExpandServices("cleaning")
	assert.False(t, MatchVendor(single, DirectoryFilter{Service: "both"}))
}

func TestMatchVendorConjunctive(t *testing.T) {
	v := vendorFixture()

	// All predicates match.
	assert.True(t, MatchVendor(v, DirectoryFilter{
		Area:    "Parel",
		Society: "Dosti Flamingos",
		Service: "cooking",
	}))

	// One failing predicate fails the whole filter, AND semantics.
	assert.False(t, MatchVendor(v, DirectoryFilter{
		Area:    "Parel",
		Society: "Lodha Park",
		Service: "cooking",
	}))
}

func TestMatchVendorEmptyFilterMatchesAll(t *testing.T) {
	assert.True(t, MatchVendor(vendorFixture(), DirectoryFilter{}))
}

func TestMatchVendorFreeTextCaseInsensitive(t *testing.T) {
	v := vendorFixture()

	assert.True(t, MatchVendor(v, DirectoryFilter{Query: "sunita"}))
	assert.True(t, MatchVendor(v, DirectoryFilter{Query: "PAREL"}))
	assert.True(t, MatchVendor(v, DirectoryFilter{Query: "dosti"}))
	assert.True(t, MatchVendor(v, DirectoryFilter{Query: "cook"}))
	assert.False(t, MatchVendor(v, DirectoryFilter{Query: "plumber"}))
}

func TestFilterVendorsPreservesOrder(t *testing.T) {
	a := vendorFixture()
	b := vendorFixture()
	b.VendorID, b.Name, b.Area = "V2", "Rekha", "Worli"

	out := FilterVendors([]VendorSummary{a, b}, DirectoryFilter{})
	assert.Len(t, out, 2)
	assert.Equal(t, "V1", out[0].VendorID)

	out = FilterVendors([]VendorSummary{a, b}, DirectoryFilter{Area: "Worli"})
	assert.Len(t, out, 1)
	assert.Equal(t, "V2", out[0].VendorID)
}
