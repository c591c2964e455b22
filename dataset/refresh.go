package dataset

import (
	"fmt"

	"github.com/dot5enko/copper/coerce"
	"github.com/dot5enko/copper/schema"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"
)

type ColumnFailure struct {
	Label schema.Label
	Rows  []int
}

type Report struct {
	Coerced  []schema.Label
	Failures []ColumnFailure
}

func (r *Report) FailedCells() int {
	n := 0
	for _, f := range r.Failures {
		n += len(f.Rows)
	}
	return n
}

// Refresh converts the values of every NUMBER column to numbers. Cells with
// no number become missing; they are listed in the report and the returned
// error wraps schema.ErrNoNumericToken. CATEGORY columns are not touched.
func (d *Dataset) Refresh() (*Report, error) {

	entries := d.meta.Export()
	results := make([]*coerce.Result, len(entries))

	var g errgroup.Group
	g.SetLimit(d.config.RefreshWorkers)

	for i, entry := range entries {

		if entry.Type != schema.Number {
			continue
		}

		cells := d.frame.At(i).Cells

		g.Go(func() error {
			result := coerce.Column(cells)
			results[i] = &result
			return nil
		})
	}

	g.Wait()

	report := &Report{}

	for i, result := range results {

		if result == nil {
			continue
		}

		label := entries[i].Label

		if err := d.frame.Replace(label, result.Cells); err != nil {
			return report, fmt.Errorf("unable to store coerced column %v : %w", label, err)
		}

		report.Coerced = append(report.Coerced, label)

		if result.Failed.Any() {
			rows := result.FailedRows()
			report.Failures = append(report.Failures, ColumnFailure{Label: label, Rows: rows})

			color.Yellow(" column %v: %d cells without a number, now missing", label, len(rows))
		}
	}

	d.logger.Info("dataset refreshed", "dataset", d.id, "coerced_columns", len(report.Coerced), "failed_cells", report.FailedCells())

	if err := d.check(); err != nil {
		return report, err
	}

	if len(report.Failures) > 0 {
		return report, fmt.Errorf("%w: %d cells in %d columns", schema.ErrNoNumericToken, report.FailedCells(), len(report.Failures))
	}

	return report, nil
}
