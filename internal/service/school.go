package service

import (
	"sort"
	"strings"

	"github.com/canstudy/tracker/internal/catalog"
	"github.com/canstudy/tracker/internal/model"
)

const (
	SchoolSortRanking = "ranking"
	SchoolSortTuition = "tuition"
	SchoolSortName    = "name"
)

// SchoolFilter narrows the school catalog. Empty fields and "all" match everything.
type SchoolFilter struct {
	Search     string
	Type       string
	Province   string
	DegreeType string
	Sort       string
}

type SchoolService struct {
	catalog *catalog.Catalog
}

func NewSchoolService(c *catalog.Catalog) *SchoolService {
	return &SchoolService{
		catalog: c,
	}
}

func (s *SchoolService) Provinces() []model.Province {
	return s.catalog.Provinces
}

func (s *SchoolService) ByID(id string) (*model.School, bool) {
	school, ok := s.catalog.School(id)
	if !ok {
		return nil, false
	}
	return &school, true
}

func (s *SchoolService) Schools(filter SchoolFilter) []model.School {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	schools := []model.School{}
	for _, school := range s.catalog.Schools {
		if search != "" && !matchesSearch(school, search) {
			continue
		}
		if isSet(filter.Type) && !strings.EqualFold(school.Type, filter.Type) {
			continue
		}
		if isSet(filter.Province) && !strings.EqualFold(school.Province, filter.Province) {
			continue
		}
		if isSet(filter.DegreeType) && !school.Offers(strings.ToLower(filter.DegreeType)) {
			continue
		}
		schools = append(schools, school)
	}

	sortSchools(schools, filter.Sort)
	return schools
}

func isSet(v string) bool {
	return v != "" && !strings.EqualFold(v, "all")
}

func matchesSearch(school model.School, search string) bool {
	return strings.Contains(strings.ToLower(school.Name), search) ||
		strings.Contains(strings.ToLower(school.City), search) ||
		strings.Contains(strings.ToLower(school.Description), search)
}

func sortSchools(schools []model.School, by string) {
	switch by {
	case SchoolSortName:
		sort.SliceStable(schools, func(i, j int) bool {
			return schools[i].Name < schools[j].Name
		})
	case SchoolSortTuition:
		sort.SliceStable(schools, func(i, j int) bool {
			a, b := schools[i].TuitionUndergrad, schools[j].TuitionUndergrad
			switch {
			case a == nil && b == nil:
				return schools[i].Name < schools[j].Name
			case a == nil:
				return false
			case b == nil:
				return true
			}
			return *a < *b
		})
	default:
		sort.SliceStable(schools, func(i, j int) bool {
			a, b := schools[i].Ranking, schools[j].Ranking
			switch {
			case a == nil && b == nil:
				return schools[i].Name < schools[j].Name
			case a == nil:
				return false
			case b == nil:
				return true
			case *a != *b:
				return *a < *b
			}
			return schools[i].Name < schools[j].Name
		})
	}
}
