package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/jcpvanhooren/pricesync/internal/enrich"
	"github.com/jcpvanhooren/pricesync/internal/model"
	"github.com/jcpvanhooren/pricesync/internal/quote"
	"github.com/jcpvanhooren/pricesync/internal/window"
)

// Source retrieves a normalized quote series for a symbol over a window.
type Source interface {
	History(ctx context.Context, symbol string, w model.FetchWindow) ([]model.QuoteRow, error)
}

// Sink is an order-preserving appender for one instrument's records.
type Sink interface {
	Append(ctx context.Context, records []model.PriceRecord) error
}

// Config is the immutable run configuration for the pipeline.
type Config struct {
	BaseCurrency string         // Book base currency mnemonic
	Window       window.Request // Run-wide fetch settings
	ToTable      bool           // Write to the prices table
	ToFile       bool           // Write to the CSV file
}

// Summary accounts for one run's outcomes.
type Summary struct {
	Instruments int // Instruments taken from the catalog
	Fetched     int // Instruments with at least one new record
	Skipped     int // Instruments with nothing new in-window
	FetchErrors int // Instruments whose fetch failed
	Records     int // Records produced across all instruments
	TableWrites int // Instruments committed to the prices table
	TableErrors int // Instruments whose table write failed
	FileWrites  int // Instruments appended to the CSV file
	FileErrors  int // Instruments whose CSV append failed
}

// Pipeline orchestrates one run over a set of instruments.
type Pipeline struct {
	cfg    Config
	source Source
	table  Sink
	file   Sink
	logger *slog.Logger

	// now is injectable so window resolution is deterministic in tests.
	now func() time.Time
}

// New creates a pipeline. Sinks may be nil when the corresponding toggle
// is off.
func New(cfg Config, source Source, table, file Sink, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		source: source,
		table:  table,
		file:   file,
		logger: logger,
		now:    time.Now,
	}
}

// Run processes every instrument in order and returns the run summary.
// Only the caller-supplied context can stop a run early; individual
// instrument failures never do.
func (p *Pipeline) Run(ctx context.Context, instruments []model.Instrument) Summary {
	summary := Summary{Instruments: len(instruments)}

	for _, inst := range instruments {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("run interrupted", "error", err)
			return summary
		}
		p.runInstrument(ctx, inst, &summary)
	}

	return summary
}

// runInstrument takes one instrument through fetch, enrich and sink writes.
func (p *Pipeline) runInstrument(ctx context.Context, inst model.Instrument, summary *Summary) {
	logger := p.logger.With("mnemonic", inst.Mnemonic)

	logger.Info("processing instrument",
		"full_name", inst.FullName,
		"namespace", inst.Namespace,
		"last_price_date", lastDate(inst),
	)

	w := window.Resolve(p.cfg.Window, inst.LastPriceDate, p.now())
	if w.Kind == model.WindowRange && w.Start.After(w.End) {
		// Last stored price is already at the window end (e.g. a second run
		// on the same day). Nothing to request.
		logger.Info("already up to date")
		summary.Skipped++
		return
	}
	symbol := quote.Symbol(inst, p.cfg.BaseCurrency)

	rows, err := p.source.History(ctx, symbol, w)
	if err != nil {
		logger.Error("fetch failed, skipping instrument", "symbol", symbol, "error", err)
		summary.FetchErrors++
		return
	}

	records := enrich.Records(inst, p.cfg.BaseCurrency, rows)
	if len(records) == 0 {
		logger.Info("no new prices")
		summary.Skipped++
		return
	}

	summary.Fetched++
	summary.Records += len(records)
	logger.Info("new prices",
		"count", len(records),
		"from", records[0].Date.Format("2006-01-02"),
		"to", records[len(records)-1].Date.Format("2006-01-02"),
	)

	// The sinks are independent failure domains: a table error must not
	// stop the CSV append, and neither stops later instruments.
	if p.cfg.ToTable && p.table != nil {
		if err := p.table.Append(ctx, records); err != nil {
			logger.Error("table write failed", "error", err)
			summary.TableErrors++
		} else {
			summary.TableWrites++
		}
	}

	if p.cfg.ToFile && p.file != nil {
		if err := p.file.Append(ctx, records); err != nil {
			logger.Error("file write failed", "error", err)
			summary.FileErrors++
		} else {
			summary.FileWrites++
		}
	}
}

func lastDate(inst model.Instrument) string {
	if inst.LastPriceDate == nil {
		return "none"
	}
	return inst.LastPriceDate.Format("2006-01-02")
}
