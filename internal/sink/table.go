package sink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcpvanhooren/pricesync/internal/model"
)

// insertPrice appends the structured subset of a record to the prices
// table. The schema is owned by the catalog application, not by us.
const insertPrice = `
	INSERT INTO prices (guid, commodity_guid, currency_guid, date,
	                    source, type, value_num, value_denom)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// TableWriter appends price records to the prices table.
type TableWriter struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewTableWriter creates a table writer over an existing pool.
func NewTableWriter(db *pgxpool.Pool, logger *slog.Logger) *TableWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableWriter{db: db, logger: logger}
}

// Append inserts one instrument's records in fetch order as a single batch.
// Rows already committed for earlier instruments are unaffected by a
// failure here; the error is surfaced to the caller.
func (w *TableWriter) Append(ctx context.Context, records []model.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}

	start := time.Now()

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertPrice, rowArgs(rec)...)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert price row: %w", err)
		}
	}

	w.logger.Debug("prices appended",
		"count", len(records),
		"duration", time.Since(start),
	)
	return nil
}

// rowArgs orders a record's structured columns to match insertPrice.
func rowArgs(rec model.PriceRecord) []any {
	return []any{
		rec.RowID,
		rec.CommodityGUID,
		rec.CurrencyGUID,
		rec.Date,
		rec.Source,
		rec.Type,
		rec.ValueNum,
		rec.ValueDenom,
	}
}
