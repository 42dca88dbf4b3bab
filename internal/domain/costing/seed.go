package costing

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedDocument struct {
	Rates []struct {
		Name string `yaml:"name"`
		Low  int    `yaml:"low"`
		High int    `yaml:"high"`
		Rate string `yaml:"rate"`
	} `yaml:"rates"`
	Products []struct {
		Species         string `yaml:"species"`
		Specification   string `yaml:"specification"`
		Size            string `yaml:"size"`
		Glazing         string `yaml:"glazing"`
		Low             int    `yaml:"low"`
		High            int    `yaml:"high"`
		ReferenceWeight string `yaml:"reference_weight"`
	} `yaml:"products"`
}

// SeedData is the factory reference data loaded into an empty database
type SeedData struct {
	Rates    []*Rate
	Products []*Product
}

// LoadSeedData parses a seed document
func LoadSeedData(data []byte) (*SeedData, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	seed := &SeedData{}
	for _, r := range doc.Rates {
		value, err := decimal.NewFromString(r.Rate)
		if err != nil {
			return nil, fmt.Errorf("rate %s: %w", r.Name, err)
		}
		rate, err := NewRate(r.Name, r.Low, r.High, value)
		if err != nil {
			return nil, fmt.Errorf("rate %s: %w", r.Name, err)
		}
		seed.Rates = append(seed.Rates, rate)
	}

	for _, p := range doc.Products {
		glazing, err := decimal.NewFromString(p.Glazing)
		if err != nil {
			return nil, fmt.Errorf("product %s %s glazing: %w", p.Species, p.Specification, err)
		}
		weight, err := decimal.NewFromString(p.ReferenceWeight)
		if err != nil {
			return nil, fmt.Errorf("product %s %s reference weight: %w", p.Species, p.Specification, err)
		}
		product, err := NewProduct(ProductInput{
			Species:         p.Species,
			Specification:   p.Specification,
			Size:            p.Size,
			Glazing:         glazing,
			Low:             p.Low,
			High:            p.High,
			ReferenceWeight: weight,
		})
		if err != nil {
			return nil, fmt.Errorf("product %s %s: %w", p.Species, p.Specification, err)
		}
		seed.Products = append(seed.Products, product)
	}
	return seed, nil
}

// DefaultSeedData returns the embedded factory reference data
func DefaultSeedData() (*SeedData, error) {
	return LoadSeedData(seedYAML)
}

// DefaultRateTable returns the factory rate brackets
func DefaultRateTable() (RateTable, error) {
	seed, err := DefaultSeedData()
	if err != nil {
		return nil, err
	}
	table := make(RateTable, 0, len(seed.Rates))
	for _, r := range seed.Rates {
		table = append(table, *r)
	}
	return table, nil
}
