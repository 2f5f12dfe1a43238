// Package catalog holds the static reference data shipped with the binary:
// Canadian schools, provinces, document templates and arrival checklists.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/canstudy/tracker/internal/model"
)

//go:embed data/*.yaml
var dataFS embed.FS

type FinancialRequirements struct {
	GIC                   float64 `yaml:"gic" json:"gic"`
	LivingExpensesPerYear float64 `yaml:"living_expenses_per_year" json:"livingExpensesPerYear"`
	TuitionAverage        float64 `yaml:"tuition_average" json:"tuitionAverage"`
	ApplicationFee        float64 `yaml:"application_fee" json:"applicationFee"`
	VisaFee               float64 `yaml:"visa_fee" json:"visaFee"`
	BiometricsFee         float64 `yaml:"biometrics_fee" json:"biometricsFee"`
}

type Checklists struct {
	PortOfEntry []model.ChecklistItem `yaml:"port_of_entry" json:"portOfEntry"`
	FirstWeek   []model.ChecklistItem `yaml:"first_week" json:"firstWeek"`
	Financial   FinancialRequirements `yaml:"financial_requirements" json:"financialRequirements"`
}

type Catalog struct {
	Schools   []model.School
	Provinces []model.Province
	Templates []model.DocumentTemplate
	Checklists
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS parses schools.yaml, provinces.yaml, document_templates.yaml and
// checklists.yaml from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}

	files := []struct {
		name string
		out  any
	}{
		{"schools.yaml", &c.Schools},
		{"provinces.yaml", &c.Provinces},
		{"document_templates.yaml", &c.Templates},
		{"checklists.yaml", &c.Checklists},
	}
	for _, f := range files {
		if err := decode(fsys, f.name, f.out); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(c.Templates, func(i, j int) bool {
		return c.Templates[i].Order < c.Templates[j].Order
	})

	return c, nil
}

func decode(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// TemplatesFor returns the document templates that apply to a degree type, in checklist order.
func (c *Catalog) TemplatesFor(degreeType string) []model.DocumentTemplate {
	var templates []model.DocumentTemplate
	for _, t := range c.Templates {
		if t.AppliesTo(degreeType) {
			templates = append(templates, t)
		}
	}
	return templates
}

func (c *Catalog) Province(code string) (model.Province, bool) {
	for _, p := range c.Provinces {
		if p.Code == code {
			return p, true
		}
	}
	return model.Province{}, false
}

func (c *Catalog) School(id string) (model.School, bool) {
	for _, s := range c.Schools {
		if s.ID == id {
			return s, true
		}
	}
	return model.School{}, false
}
