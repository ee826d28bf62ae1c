package catalog

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/chiu791118/daily-report-2.0/internal/models"
)

// ListedCompany is a tracked company with a traded ticker.
type ListedCompany struct {
	Name    string   `yaml:"name" validate:"required"`
	Ticker  string   `yaml:"ticker" validate:"required,alphanum,uppercase,max=5"`
	Aliases []string `yaml:"aliases"`
}

// UnlistedCompany is a tracked private company.
type UnlistedCompany struct {
	Name    string   `yaml:"name" validate:"required"`
	Aliases []string `yaml:"aliases"`
}

// IndustryEntities groups the companies tracked under one industry key.
type IndustryEntities struct {
	Listed   []ListedCompany   `yaml:"listed" validate:"dive"`
	Unlisted []UnlistedCompany `yaml:"unlisted" validate:"dive"`
}

// Person is a tracked individual, optionally linked to tracked entities.
type Person struct {
	Name     string   `yaml:"name" validate:"required"`
	Entities []string `yaml:"entities"`
	Aliases  []string `yaml:"aliases"`
}

// Institution is a tracked organization without a traded ticker
// (central banks, regulators, research labs).
type Institution struct {
	Name    string   `yaml:"name" validate:"required"`
	Aliases []string `yaml:"aliases"`
}

// Catalog is the parsed entity catalog. The catalog is the sole source of the
// matching vocabulary; a catalog that fails to load or validate is fatal.
type Catalog struct {
	Entities     map[string]IndustryEntities `yaml:"entities" validate:"required,min=1,dive"`
	KeyPeople    []Person                    `yaml:"key_people" validate:"dive"`
	Institutions []Institution               `yaml:"institutions" validate:"dive"`
}

// Load reads and validates the entity catalog at path. Any failure is
// returned as a *models.ConfigError.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.NewConfigError(path, fmt.Errorf("read catalog: %w", err))
	}
	return Parse(path, data)
}

// Parse decodes and validates catalog bytes. path is used only for error
// context.
func Parse(path string, data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, models.NewConfigError(path, fmt.Errorf("parse catalog: %w", err))
	}

	validate := validator.New()
	if err := validate.Struct(&cat); err != nil {
		return nil, models.NewConfigError(path, fmt.Errorf("validate catalog: %w", err))
	}

	return &cat, nil
}

// Tickers returns all tracked ticker symbols.
func (c *Catalog) Tickers() []string {
	var tickers []string
	for _, industry := range c.Entities {
		for _, company := range industry.Listed {
			tickers = append(tickers, company.Ticker)
		}
	}
	return tickers
}
