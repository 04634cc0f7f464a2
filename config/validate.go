package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/sasa5linkar/webanno-spacy-converter/tsv"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if _, err := tsv.ParseVariant(c.Variant); err != nil {
		return fmt.Errorf("variant: %w", err)
	}

	if c.Convert.BatchSize < 1 {
		return fmt.Errorf("convert.batch_size must be >= 1 (got %d)", c.Convert.BatchSize)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", c.Workers)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}
