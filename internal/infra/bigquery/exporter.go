// Package bigquery streams ledger snapshots into a BigQuery table for
// ad-hoc analysis outside the app.
package bigquery

import (
	"context"
	"fmt"
	"time"

	bq "cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/wealthmind/internal/ledger"
)

const dateFormat = "2006-01-02"

// LedgerRow is the BigQuery schema for one exported ledger entry.
type LedgerRow struct {
	TransactionID string     `bigquery:"transaction_id"`
	Date          civil.Date `bigquery:"transaction_date"`
	Amount        float64    `bigquery:"amount"`
	Type          string     `bigquery:"type"`
	Category      string     `bigquery:"category"`
	Description   string     `bigquery:"description"`
	ExportedTS    time.Time  `bigquery:"exported_ts"`
}

// CategoryTotal is one aggregated row from the exported table.
type CategoryTotal struct {
	Category string  `bigquery:"category"`
	Total    float64 `bigquery:"total"`
}

// Exporter writes ledger entries to a configured BigQuery table.
type Exporter struct {
	ProjectID string
	Dataset   string
	Table     string
}

// NewExporter creates an exporter for the given destination table.
func NewExporter(projectID, dataset, table string) *Exporter {
	return &Exporter{ProjectID: projectID, Dataset: dataset, Table: table}
}

// ExportLedger streams the full ledger into the destination table. Dates
// that fail to parse are exported with a zero date rather than aborting
// the batch; the ledger tolerates malformed entries and so does the export.
func (e *Exporter) ExportLedger(ctx context.Context, txs []ledger.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	client, err := bq.NewClient(ctx, e.ProjectID)
	if err != nil {
		return fmt.Errorf("ExportLedger: bigquery client: %w", err)
	}
	defer client.Close()

	now := time.Now()
	rows := make([]*LedgerRow, 0, len(txs))
	for _, t := range txs {
		row := &LedgerRow{
			TransactionID: t.ID,
			Amount:        t.Amount,
			Type:          string(t.Type),
			Category:      t.Category,
			Description:   t.Description,
			ExportedTS:    now,
		}
		if d, err := time.Parse(dateFormat, t.Date); err == nil {
			row.Date = civil.DateOf(d)
		}
		rows = append(rows, row)
	}

	inserter := client.DatasetInProject(e.ProjectID, e.Dataset).Table(e.Table).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("ExportLedger: inserting rows: %w", err)
	}
	return nil
}

// QueryCategoryTotals aggregates exported expense amounts per category for
// the month containing the given date.
func (e *Exporter) QueryCategoryTotals(ctx context.Context, month time.Time) ([]*CategoryTotal, error) {
	client, err := bq.NewClient(ctx, e.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("QueryCategoryTotals: bigquery client: %w", err)
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf(`
		SELECT
			category,
			SUM(amount) AS total
		FROM %s.%s
		WHERE type = 'expense'
		  AND transaction_date >= @month_start
		  AND transaction_date < @month_end
		GROUP BY category
		ORDER BY total DESC
	`, e.Dataset, e.Table))

	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	q.Parameters = []bq.QueryParameter{
		{Name: "month_start", Value: monthStart.Format(dateFormat)},
		{Name: "month_end", Value: monthStart.AddDate(0, 1, 0).Format(dateFormat)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryCategoryTotals: query read: %w", err)
	}

	var totals []*CategoryTotal
	for {
		var row CategoryTotal
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryCategoryTotals: iterating rows: %w", err)
		}
		totals = append(totals, &row)
	}
	return totals, nil
}
