package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// NamespaceCurrency marks currency-pair instruments. All other namespaces
// (e.g. "AMEX", "EUREX", "FUND") are treated as securities.
const NamespaceCurrency = "CURRENCY"

// -----------------------------------------------------------------------------
// Catalog Types
// -----------------------------------------------------------------------------

// Instrument is a run-scoped snapshot of one tradable commodity from the
// catalog database. It is never mutated by the pipeline.
type Instrument struct {
	GUID          string     // Primary key (32-char hex)
	Namespace     string     // Classification (e.g. "CURRENCY", "AMEX")
	Mnemonic      string     // Short ticker symbol (e.g. "USD", "VWRL.AS")
	FullName      string     // Human-readable name
	CurrencyGUID  string     // Reference currency the prices are quoted in
	ValueDenom    int64      // Denomination scale (e.g. 100, 100000)
	LastPriceDate *time.Time // Most recent stored price date, nil if none
}

// IsCurrency reports whether the instrument is a currency pair.
func (i Instrument) IsCurrency() bool {
	return i.Namespace == NamespaceCurrency
}

// -----------------------------------------------------------------------------
// Fetch Window Types
// -----------------------------------------------------------------------------

// WindowKind enumerates how a FetchWindow is expressed.
type WindowKind int

const (
	// WindowRange is an explicit [Start, End] date pair.
	WindowRange WindowKind = iota

	// WindowPeriod is a named relative period (e.g. "1mo", "max") left for
	// the quote source to interpret.
	WindowPeriod

	// WindowFullHistory requests everything the source has. Used when an
	// instrument has no stored prices yet.
	WindowFullHistory
)

// FetchWindow is the resolved download range for one instrument and one run.
// A window is either an explicit date pair, a named period, or full history,
// never a mix.
type FetchWindow struct {
	Kind   WindowKind
	Start  time.Time // Valid only for WindowRange
	End    time.Time // Valid only for WindowRange
	Period string    // Valid only for WindowPeriod
}

// -----------------------------------------------------------------------------
// Price Types
// -----------------------------------------------------------------------------

// QuoteRow is one normalized (trading date, close) observation from the
// quote source. Ephemeral, never persisted as-is.
type QuoteRow struct {
	Date  time.Time // Calendar date, UTC midnight
	Close float64   // Closing price in the instrument's native market
}

// PriceRecord is the canonical output unit, one per QuoteRow. Records are
// immutable after creation: create, write to zero or more sinks, discard.
type PriceRecord struct {
	RowID         string          // Fresh guid per record, opaque
	Date          time.Time       // Trading date, UTC midnight
	CurrencyCode  string          // Book base currency (e.g. "EUR")
	Close         decimal.Decimal // Rounded per the instrument's namespace
	Symbol        string          // Instrument mnemonic
	FullName      string          // Instrument full name
	Namespace     string          // Instrument classification
	CommodityGUID string          // Owning instrument guid
	CurrencyGUID  string          // Reference currency guid
	Source        string          // Constant provenance marker
	Type          string          // Constant price-type marker
	ValueNum      int64           // Close scaled by ValueDenom
	ValueDenom    int64           // Instrument denomination scale
}
