package config

import (
	"time"
)

// Config is the root configuration for a price sync run.
type Config struct {
	Silent   bool        `yaml:"silent"`
	Database DBConfig    `yaml:"database"`
	Book     BookConfig  `yaml:"book"`
	Fetch    FetchConfig `yaml:"fetch"`
	Sinks    SinksConfig `yaml:"sinks"`
	Quote    QuoteConfig `yaml:"quote"`
}

// DBConfig holds the catalog database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// BookConfig holds book-level settings.
type BookConfig struct {
	// Currency is the book's base currency mnemonic (e.g. "EUR").
	// Currency instruments are quoted against it.
	Currency string `yaml:"currency"`
}

// FetchConfig selects the download window policy.
//
// An explicit start date takes precedence over the period. Period "auto"
// resumes each instrument from its last stored price date.
type FetchConfig struct {
	Period    string `yaml:"period"`     // "auto" or a named period (1d..max)
	StartDate string `yaml:"start_date"` // YYYY-MM-DD, optional
	EndDate   string `yaml:"end_date"`   // YYYY-MM-DD, optional, defaults to today
}

// SinksConfig toggles the two output destinations.
type SinksConfig struct {
	ToDB          bool   `yaml:"to_db"`
	ToCSV         bool   `yaml:"to_csv"`
	CSVPath       string `yaml:"csv_path"`
	CSVOnExisting string `yaml:"csv_on_existing"` // "append", "overwrite" or "skip"
}

// QuoteConfig holds quote source settings.
type QuoteConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// dateFormat is the accepted layout for start_date and end_date.
const dateFormat = "2006-01-02"

// Start returns the parsed explicit start date, or nil if unset.
func (f FetchConfig) Start() (*time.Time, error) {
	return parseDate(f.StartDate)
}

// End returns the parsed explicit end date, or nil if unset.
func (f FetchConfig) End() (*time.Time, error) {
	return parseDate(f.EndDate)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
