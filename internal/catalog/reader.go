package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcpvanhooren/pricesync/internal/model"
)

// templateNamespace marks placeholder commodities that must never be synced.
const templateNamespace = "template"

// excludedMnemonic is skipped alongside the book base currency. CHE is the
// WIR franc, a bookkeeping-only currency with no quotable market.
const excludedMnemonic = "CHE"

// instrumentsQuery yields exactly one row per instrument: its most recent
// price row supplies the last stored date, quote currency and denominator,
// even when older history spans other currencies or denominators.
// Instruments without any price history are not part of the join and
// therefore resolve to a full-history fetch elsewhere.
const instrumentsQuery = `
	SELECT DISTINCT ON (c.mnemonic)
	       c.guid,
	       c.namespace,
	       c.mnemonic,
	       c.fullname,
	       p.currency_guid,
	       p.date::date AS last_price_date,
	       p.value_denom
	FROM commodities c
	JOIN prices p ON p.commodity_guid = c.guid
	WHERE c.namespace <> $1
	  AND c.mnemonic <> $2
	  AND c.mnemonic <> $3
	ORDER BY c.mnemonic, p.date DESC
`

// Reader loads instruments from the catalog database.
type Reader struct {
	db           *pgxpool.Pool
	baseCurrency string
	logger       *slog.Logger
}

// NewReader creates a catalog reader. Instruments whose mnemonic equals the
// book base currency are excluded, as are template entries.
func NewReader(db *pgxpool.Pool, baseCurrency string, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		db:           db,
		baseCurrency: baseCurrency,
		logger:       logger,
	}
}

// Instruments returns all trackable instruments ordered by mnemonic.
// Any query or scan failure is returned to the caller; a partial catalog
// is never produced.
func (r *Reader) Instruments(ctx context.Context) ([]model.Instrument, error) {
	rows, err := r.db.Query(ctx, instrumentsQuery,
		templateNamespace, r.baseCurrency, excludedMnemonic)
	if err != nil {
		return nil, fmt.Errorf("query instruments: %w", err)
	}
	defer rows.Close()

	var instruments []model.Instrument
	for rows.Next() {
		var inst model.Instrument
		var lastDate *time.Time
		if err := rows.Scan(
			&inst.GUID,
			&inst.Namespace,
			&inst.Mnemonic,
			&inst.FullName,
			&inst.CurrencyGUID,
			&lastDate,
			&inst.ValueDenom,
		); err != nil {
			return nil, fmt.Errorf("scan instrument row: %w", err)
		}
		inst.LastPriceDate = lastDate
		instruments = append(instruments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read instrument rows: %w", err)
	}

	r.logger.Debug("instruments selected", "count", len(instruments))
	return instruments, nil
}
