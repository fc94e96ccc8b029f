package window

import (
	"time"

	"github.com/jcpvanhooren/pricesync/internal/model"
)

// PeriodAuto resumes each instrument from the day after its last stored
// price date.
const PeriodAuto = "auto"

// Request carries the run-wide fetch settings. The same Request is applied
// to every instrument; only the instrument's last price date varies.
type Request struct {
	Period string     // PeriodAuto or a named period understood by the source
	Start  *time.Time // Explicit start date, takes precedence over Period
	End    *time.Time // Explicit end date, defaults to today
}

// Resolve computes the fetch window for one instrument.
//
// An explicit start date always wins, enabling deliberate re-fetch or
// backfill regardless of stored state. In auto mode the window starts the
// day after the last stored price date; an instrument without any stored
// price resolves to a full-history fetch, never to date arithmetic on a
// missing date. Any other period is passed through for the source to
// interpret.
func Resolve(req Request, lastPriceDate *time.Time, now time.Time) model.FetchWindow {
	end := truncate(now)
	if req.End != nil {
		end = truncate(*req.End)
	}

	if req.Start != nil {
		return model.FetchWindow{
			Kind:  model.WindowRange,
			Start: truncate(*req.Start),
			End:   end,
		}
	}

	if req.Period == PeriodAuto {
		if lastPriceDate == nil {
			return model.FetchWindow{Kind: model.WindowFullHistory}
		}
		return model.FetchWindow{
			Kind:  model.WindowRange,
			Start: truncate(*lastPriceDate).AddDate(0, 0, 1),
			End:   end,
		}
	}

	return model.FetchWindow{
		Kind:   model.WindowPeriod,
		Period: req.Period,
	}
}

// truncate drops the time-of-day component, keeping a UTC calendar date.
func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
