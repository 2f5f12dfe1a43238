package model

const (
	SchoolTypeUniversity = "university"
	SchoolTypeCollege    = "college"
)

type School struct {
	ID               string   `yaml:"id" json:"id"`
	Name             string   `yaml:"name" json:"name"`
	Type             string   `yaml:"type" json:"type"`
	City             string   `yaml:"city" json:"city"`
	Province         string   `yaml:"province" json:"province"`
	Description      string   `yaml:"description" json:"description"`
	Website          string   `yaml:"website" json:"website"`
	Ranking          *int     `yaml:"ranking" json:"ranking"`
	TuitionUndergrad *float64 `yaml:"tuition_undergrad" json:"tuitionUndergrad"`
	TuitionGrad      *float64 `yaml:"tuition_grad" json:"tuitionGrad"`
	ApplicationFee   float64  `yaml:"application_fee" json:"applicationFee"`
	Undergrad        bool     `yaml:"undergrad" json:"undergrad"`
	Masters          bool     `yaml:"masters" json:"masters"`
	PhD              bool     `yaml:"phd" json:"phd"`
}

func (s *School) Offers(degreeType string) bool {
	switch degreeType {
	case DegreeUndergrad:
		return s.Undergrad
	case DegreeMasters:
		return s.Masters
	case DegreePhD:
		return s.PhD
	}
	return false
}

type Province struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}
