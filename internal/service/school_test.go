package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canstudy/tracker/internal/catalog"
	"github.com/canstudy/tracker/internal/model"
)

func names(schools []model.School) []string {
	out := make([]string, 0, len(schools))
	for _, s := range schools {
		out = append(out, s.Name)
	}
	return out
}

func TestSchools(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)
	svc := NewSchoolService(c)

	tests := []struct {
		name      string
		filter    SchoolFilter
		wantCount int
		wantFirst string
		wantLast  string
	}{
		{"no filter", SchoolFilter{}, 18, "University of Toronto", "University of Saskatchewan"},
		{"all is no filter", SchoolFilter{Type: "all", Province: "all", DegreeType: "all"}, 18, "University of Toronto", ""},
		{"search matches city", SchoolFilter{Search: "TORONTO"}, 3, "University of Toronto", "Seneca Polytechnic"},
		{"colleges", SchoolFilter{Type: model.SchoolTypeCollege}, 4, "British Columbia Institute of Technology", ""},
		{"province", SchoolFilter{Province: "ON"}, 6, "University of Toronto", ""},
		{"phd programs", SchoolFilter{DegreeType: model.DegreePhD}, 13, "", ""},
		{"sort by tuition", SchoolFilter{Sort: SchoolSortTuition}, 18, "Seneca Polytechnic", "University of Waterloo"},
		{"sort by name", SchoolFilter{Sort: SchoolSortName}, 18, "British Columbia Institute of Technology", ""},
		{"no match", SchoolFilter{Search: "sorbonne"}, 0, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := svc.Schools(tc.filter)
			require.Len(t, got, tc.wantCount, names(got))
			if tc.wantFirst != "" {
				assert.Equal(t, tc.wantFirst, got[0].Name)
			}
			if tc.wantLast != "" {
				assert.Equal(t, tc.wantLast, got[len(got)-1].Name)
			}
		})
	}
}

func TestSchoolsRankingPutsUnrankedLast(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	got := NewSchoolService(c).Schools(SchoolFilter{})
	seenUnranked := false
	for _, s := range got {
		if s.Ranking == nil {
			seenUnranked = true
			continue
		}
		assert.False(t, seenUnranked, "%s is ranked but follows an unranked school", s.Name)
	}
}

func TestSchoolByID(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)
	svc := NewSchoolService(c)

	school, ok := svc.ByID("mcgill-university")
	require.True(t, ok)
	assert.Equal(t, "QC", school.Province)

	_, ok = svc.ByID("missing")
	assert.False(t, ok)
	assert.Len(t, svc.Provinces(), 10)
}
