package sink

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/jcpvanhooren/pricesync/internal/model"
)

// csvHeader is the fixed column order of the consolidated CSV file. The
// names mirror the prices table plus the display columns, so the file can
// be imported manually without remapping.
var csvHeader = []string{
	"date",
	"Curr",
	"Close",
	"Symbol",
	"Full_Name",
	"Namespace",
	"guid",
	"commodity_guid",
	"currency_guid",
	"source",
	"type",
	"value_num",
	"value_denom",
}

const csvDateFormat = "2006-01-02"

// CSVWriter appends full price records to a delimited file.
type CSVWriter struct {
	path   string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer targeting path. Nothing is opened
// until the first Append.
func NewCSVWriter(path string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{path: path, logger: logger}
}

// Path returns the target file path.
func (w *CSVWriter) Path() string {
	return w.path
}

// Exists reports whether the target file is already present. Only a
// definite not-exist counts as absent; any other stat failure is treated
// as present so a transient error can never cause a second header row.
func (w *CSVWriter) Exists() bool {
	_, err := os.Stat(w.path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// Remove deletes the target file. This is the only way existing content is
// ever discarded; Append never truncates. Returns whether a file was
// actually removed.
func (w *CSVWriter) Remove() (bool, error) {
	if !w.Exists() {
		return false, nil
	}
	if err := os.Remove(w.path); err != nil {
		return false, fmt.Errorf("remove %s: %w", w.path, err)
	}
	w.logger.Info("existing file removed", "path", w.path)
	return true, nil
}

// Append writes one instrument's records in fetch order. The header row is
// written only when the file does not exist at append time, so repeated
// runs accumulate into one importable file.
func (w *CSVWriter) Append(ctx context.Context, records []model.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	writeHeader := !w.Exists()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", w.path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if writeHeader {
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for _, rec := range records {
		if err := cw.Write(csvRow(rec)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", w.path, err)
	}

	w.logger.Debug("csv appended",
		"path", w.path,
		"count", len(records),
		"header", writeHeader,
	)
	return nil
}

// csvRow orders a record's fields to match csvHeader.
func csvRow(rec model.PriceRecord) []string {
	return []string{
		rec.Date.Format(csvDateFormat),
		rec.CurrencyCode,
		rec.Close.String(),
		rec.Symbol,
		rec.FullName,
		rec.Namespace,
		rec.RowID,
		rec.CommodityGUID,
		rec.CurrencyGUID,
		rec.Source,
		rec.Type,
		strconv.FormatInt(rec.ValueNum, 10),
		strconv.FormatInt(rec.ValueDenom, 10),
	}
}
