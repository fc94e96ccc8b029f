package quote

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jcpvanhooren/pricesync/internal/model"
)

// chartResponse mirrors the quote source's v8 chart payload.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol    string `json:"symbol"`
		GMTOffset int64  `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// parseChart normalizes a chart payload to ascending (date, close) rows.
//
// Timestamps are shifted by the exchange's GMT offset and truncated to a
// plain calendar date; rows with a missing close (holidays, halted
// sessions) are dropped, and duplicate dates keep the last observation.
// Rows outside an explicit range are discarded.
func parseChart(body []byte, w model.FetchWindow) ([]model.QuoteRow, error) {
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal chart: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error %s: %s",
			resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, nil
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := result.Indicators.Quote[0].Close

	byDate := make(map[time.Time]float64, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		date := tradingDate(ts, result.Meta.GMTOffset)
		if w.Kind == model.WindowRange && (date.Before(w.Start) || date.After(w.End)) {
			continue
		}
		byDate[date] = *closes[i]
	}

	rows := make([]model.QuoteRow, 0, len(byDate))
	for date, close := range byDate {
		rows = append(rows, model.QuoteRow{Date: date, Close: close})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	return rows, nil
}

// tradingDate converts an epoch timestamp to the exchange-local calendar
// date, expressed as UTC midnight.
func tradingDate(ts, gmtOffset int64) time.Time {
	local := time.Unix(ts+gmtOffset, 0).UTC()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
