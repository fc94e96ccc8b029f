package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcpvanhooren/pricesync/internal/model"
	"github.com/jcpvanhooren/pricesync/internal/window"
)

type fetchCall struct {
	symbol string
	window model.FetchWindow
}

type fakeSource struct {
	rows  map[string][]model.QuoteRow
	errs  map[string]error
	calls []fetchCall
}

func (f *fakeSource) History(ctx context.Context, symbol string, w model.FetchWindow) ([]model.QuoteRow, error) {
	f.calls = append(f.calls, fetchCall{symbol: symbol, window: w})
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.rows[symbol], nil
}

type fakeSink struct {
	batches [][]model.PriceRecord
	err     error
}

func (f *fakeSink) Append(ctx context.Context, records []model.PriceRecord) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, records)
	return nil
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func security(mnemonic string, last *time.Time) model.Instrument {
	return model.Instrument{
		GUID:          "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
		Namespace:     "AMEX",
		Mnemonic:      mnemonic,
		FullName:      mnemonic + " fund",
		CurrencyGUID:  "ffeeddccbbaaffeeddccbbaaffeeddcc",
		ValueDenom:    100,
		LastPriceDate: last,
	}
}

func newPipeline(cfg Config, source Source, table, file Sink) *Pipeline {
	p := New(cfg, source, table, file, nil)
	p.now = func() time.Time {
		return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	}
	return p
}

func autoConfig() Config {
	return Config{
		BaseCurrency: "EUR",
		Window:       window.Request{Period: window.PeriodAuto},
		ToTable:      true,
		ToFile:       true,
	}
}

func TestRun_IncrementalFetchAndEnrich(t *testing.T) {
	source := &fakeSource{
		rows: map[string][]model.QuoteRow{
			"VWRL.AS": {
				{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Close: 101.234},
				{Date: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), Close: 102.345},
			},
		},
	}
	table := &fakeSink{}
	file := &fakeSink{}
	p := newPipeline(autoConfig(), source, table, file)

	inst := security("VWRL.AS", datePtr(2024, 1, 10))
	summary := p.Run(context.Background(), []model.Instrument{inst})

	// The window resumes the day after the last stored price date.
	require.Len(t, source.calls, 1)
	assert.Equal(t, "VWRL.AS", source.calls[0].symbol)
	assert.Equal(t, model.WindowRange, source.calls[0].window.Kind)
	assert.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), source.calls[0].window.Start)

	assert.Equal(t, 1, summary.Fetched)
	assert.Equal(t, 2, summary.Records)
	assert.Equal(t, 1, summary.TableWrites)
	assert.Equal(t, 1, summary.FileWrites)

	// Both sinks receive the same enriched batch in fetch order.
	require.Len(t, table.batches, 1)
	require.Len(t, file.batches, 1)
	records := table.batches[0]
	require.Len(t, records, 2)
	assert.Equal(t, int64(10123), records[0].ValueNum)
	assert.Equal(t, int64(10235), records[1].ValueNum)
	assert.Equal(t, int64(100), records[0].ValueDenom)
	assert.Equal(t, file.batches[0], records)
}

func TestRun_CurrencySymbolDerivation(t *testing.T) {
	source := &fakeSource{}
	p := newPipeline(autoConfig(), source, &fakeSink{}, &fakeSink{})

	inst := model.Instrument{
		Namespace:     model.NamespaceCurrency,
		Mnemonic:      "USD",
		ValueDenom:    100000,
		LastPriceDate: datePtr(2024, 1, 10),
	}
	p.Run(context.Background(), []model.Instrument{inst})

	require.Len(t, source.calls, 1)
	assert.Equal(t, "USDEUR=X", source.calls[0].symbol)
}

func TestRun_EmptySeriesGoesStraightToDone(t *testing.T) {
	source := &fakeSource{} // no rows for anything
	table := &fakeSink{}
	file := &fakeSink{}
	p := newPipeline(autoConfig(), source, table, file)

	inst := security("VWRL.AS", datePtr(2024, 1, 14))
	summary := p.Run(context.Background(), []model.Instrument{inst})

	assert.Equal(t, 1, summary.Skipped)
	assert.Zero(t, summary.Records)
	assert.Empty(t, table.batches, "no sink writes for an empty series")
	assert.Empty(t, file.batches)
}

func TestRun_FetchFailureIsolatedToInstrument(t *testing.T) {
	source := &fakeSource{
		rows: map[string][]model.QuoteRow{
			"B": {{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Close: 10}},
		},
		errs: map[string]error{"A": errors.New("connection reset")},
	}
	table := &fakeSink{}
	p := newPipeline(autoConfig(), source, table, &fakeSink{})

	instruments := []model.Instrument{
		security("A", datePtr(2024, 1, 10)),
		security("B", datePtr(2024, 1, 10)),
	}
	summary := p.Run(context.Background(), instruments)

	assert.Equal(t, 1, summary.FetchErrors)
	assert.Equal(t, 1, summary.Fetched, "B must still be processed after A fails")
	require.Len(t, table.batches, 1)
	assert.Equal(t, "B", table.batches[0][0].Symbol)
}

func TestRun_TableFailureDoesNotBlockFileOrNextInstrument(t *testing.T) {
	source := &fakeSource{
		rows: map[string][]model.QuoteRow{
			"A": {{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Close: 10}},
			"B": {{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Close: 20}},
		},
	}
	table := &fakeSink{err: errors.New("connection lost")}
	file := &fakeSink{}
	p := newPipeline(autoConfig(), source, table, file)

	instruments := []model.Instrument{
		security("A", datePtr(2024, 1, 10)),
		security("B", datePtr(2024, 1, 10)),
	}
	summary := p.Run(context.Background(), instruments)

	assert.Equal(t, 2, summary.TableErrors)
	assert.Equal(t, 2, summary.FileWrites, "file sink still receives both batches")
	require.Len(t, file.batches, 2)
	assert.Equal(t, "A", file.batches[0][0].Symbol)
	assert.Equal(t, "B", file.batches[1][0].Symbol)
}

func TestRun_SinkTogglesGateWrites(t *testing.T) {
	source := &fakeSource{
		rows: map[string][]model.QuoteRow{
			"A": {{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Close: 10}},
		},
	}
	table := &fakeSink{}
	file := &fakeSink{}

	cfg := autoConfig()
	cfg.ToTable = false
	p := newPipeline(cfg, source, table, file)

	summary := p.Run(context.Background(), []model.Instrument{
		security("A", datePtr(2024, 1, 10)),
	})

	assert.Empty(t, table.batches, "disabled sink must not be written")
	assert.Len(t, file.batches, 1)
	assert.Zero(t, summary.TableWrites)
	assert.Equal(t, 1, summary.FileWrites)
}

func TestRun_SelfPairInstrumentIsSkipped(t *testing.T) {
	source := &fakeSource{
		rows: map[string][]model.QuoteRow{
			"EUREUR=X": {{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Close: 1}},
		},
	}
	table := &fakeSink{}
	p := newPipeline(autoConfig(), source, table, &fakeSink{})

	inst := model.Instrument{
		Namespace:     model.NamespaceCurrency,
		Mnemonic:      "EUR",
		ValueDenom:    100000,
		LastPriceDate: datePtr(2024, 1, 10),
	}
	summary := p.Run(context.Background(), []model.Instrument{inst})

	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, table.batches)
}

func TestRun_SameDayRerunIsUpToDateNotAnError(t *testing.T) {
	// Second run on the day a price was already stored: the auto window
	// would start tomorrow and end today. That is the steady state of
	// running twice in one day, not a fetch failure.
	source := &fakeSource{}
	table := &fakeSink{}
	p := newPipeline(autoConfig(), source, table, &fakeSink{})

	inst := security("VWRL.AS", datePtr(2024, 1, 15)) // == injected now
	summary := p.Run(context.Background(), []model.Instrument{inst})

	assert.Empty(t, source.calls, "no request for an already up-to-date instrument")
	assert.Equal(t, 1, summary.Skipped)
	assert.Zero(t, summary.FetchErrors)
	assert.Empty(t, table.batches)
}

func TestRun_FullHistoryForNewInstrument(t *testing.T) {
	source := &fakeSource{}
	p := newPipeline(autoConfig(), source, &fakeSink{}, &fakeSink{})

	p.Run(context.Background(), []model.Instrument{security("NEW", nil)})

	require.Len(t, source.calls, 1)
	assert.Equal(t, model.WindowFullHistory, source.calls[0].window.Kind)
}
