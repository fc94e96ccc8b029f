package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultDBPort        = 5432
	DefaultDBName        = "gnucash"
	DefaultDBSSLMode     = "prefer"
	DefaultMaxConns      = 4
	DefaultMinConns      = 1
	DefaultCurrency      = "EUR"
	DefaultPeriod        = "auto"
	DefaultCSVPath       = "consolidated_prices.csv"
	DefaultCSVOnExisting = CSVAppend
	DefaultQuoteBaseURL  = "https://query1.finance.yahoo.com/v8/finance/chart"
	DefaultQuoteTimeout  = 30 * time.Second
)

// Policies for an already existing CSV file.
const (
	CSVAppend    = "append"    // keep the file, append without a header
	CSVOverwrite = "overwrite" // remove the file, start fresh
	CSVSkip      = "skip"      // keep the file, disable the CSV sink this run
)

func (c *Config) applyDefaults() {
	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.Name == "" {
		c.Database.Name = DefaultDBName
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Book defaults
	if c.Book.Currency == "" {
		c.Book.Currency = DefaultCurrency
	}

	// Fetch defaults
	if c.Fetch.Period == "" {
		c.Fetch.Period = DefaultPeriod
	}

	// Sink defaults
	if c.Sinks.CSVPath == "" {
		c.Sinks.CSVPath = DefaultCSVPath
	}
	if c.Sinks.CSVOnExisting == "" {
		c.Sinks.CSVOnExisting = DefaultCSVOnExisting
	}

	// Quote source defaults
	if c.Quote.BaseURL == "" {
		c.Quote.BaseURL = DefaultQuoteBaseURL
	}
	if c.Quote.Timeout == 0 {
		c.Quote.Timeout = DefaultQuoteTimeout
	}
}
