// Package window resolves the concrete download range for one instrument
// and one run.
//
// Resolution is a pure function of the run's fetch settings, the
// instrument's last stored price date and the current date. No store or
// network access happens here.
package window
