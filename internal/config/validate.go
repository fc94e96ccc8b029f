package config

import (
	"fmt"
)

// validPeriods are the download periods the quote source understands, plus
// "auto" which resumes from the last stored price date per instrument.
var validPeriods = map[string]bool{
	"auto": true,
	"1d":   true,
	"5d":   true,
	"1mo":  true,
	"3mo":  true,
	"6mo":  true,
	"1y":   true,
	"2y":   true,
	"5y":   true,
	"10y":  true,
	"ytd":  true,
	"max":  true,
}

// Validate checks the configuration for completeness and consistency.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Silent && c.Database.Password == "" {
		return fmt.Errorf("database.password is required in silent mode")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) cannot exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if !validPeriods[c.Fetch.Period] {
		return fmt.Errorf("fetch.period %q is not a valid period", c.Fetch.Period)
	}

	start, err := c.Fetch.Start()
	if err != nil {
		return fmt.Errorf("fetch.start_date must be YYYY-MM-DD: %w", err)
	}
	end, err := c.Fetch.End()
	if err != nil {
		return fmt.Errorf("fetch.end_date must be YYYY-MM-DD: %w", err)
	}
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("fetch.end_date (%s) cannot precede start_date (%s)",
			end.Format(dateFormat), start.Format(dateFormat))
	}

	switch c.Sinks.CSVOnExisting {
	case CSVAppend, CSVOverwrite, CSVSkip:
	default:
		return fmt.Errorf("sinks.csv_on_existing must be %q, %q or %q",
			CSVAppend, CSVOverwrite, CSVSkip)
	}
	if c.Sinks.ToCSV && c.Sinks.CSVPath == "" {
		return fmt.Errorf("sinks.csv_path is required when sinks.to_csv is set")
	}

	if c.Quote.Timeout < 0 {
		return fmt.Errorf("quote.timeout cannot be negative")
	}

	return nil
}
