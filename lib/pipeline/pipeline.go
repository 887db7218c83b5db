// Package pipeline drives a scrape run: enumerate candidate bills,
// process each one, collect output rows. One bad bill page must never
// kill a crawl that has hours of polite pacing behind it.
package pipeline

import (
	"context"
	"log/slog"

	"legiscrape-backend/lib/export"
	"legiscrape-backend/lib/runstore"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("legiscrape.lib.pipeline")

// BillRef identifies one bill to process.
type BillRef struct {
	Legislature string
	Session     string
	Billno      string
	// URL of the bill's landing page, when enumeration already knows it.
	URL string
}

// Enumerator produces the candidate bills for a run.
type Enumerator interface {
	Bills(ctx context.Context) ([]BillRef, error)
}

// Processor scrapes a single bill. Returning a nil row with a nil
// error means the bill did not match the run's filters.
type Processor interface {
	Process(ctx context.Context, ref BillRef) (*export.Row, error)
}

type Summary struct {
	Total   int
	Matched int
	Skipped int
	Failed  int
}

type Runner struct {
	// optional, enables resume across interrupted runs
	Store *runstore.Store
}

// Run enumerates and processes every bill, returning the matched rows.
// Processing errors are logged and counted, not propagated.
func (r Runner) Run(ctx context.Context, enum Enumerator, proc Processor) ([]export.Row, Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	refs, err := enum.Bills(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, Summary{}, err
	}

	summary := Summary{Total: len(refs)}
	var rows []export.Row

	for i, ref := range refs {
		if ctx.Err() != nil {
			return rows, summary, ctx.Err()
		}

		if r.Store != nil {
			seen, err := r.Store.Seen(ctx, ref.Legislature, ref.Session, ref.Billno)
			if err != nil {
				return rows, summary, err
			}
			if seen {
				summary.Skipped++
				continue
			}
		}

		slog.Info(
			"processing bill",
			"legislature", ref.Legislature,
			"session", ref.Session,
			"billno", ref.Billno,
			"progress", i+1,
			"total", len(refs),
		)

		row, err := r.processOne(ctx, proc, ref)
		if err != nil {
			slog.Error(
				"failed to process bill",
				"billno", ref.Billno,
				"err", err,
			)
			summary.Failed++
			continue
		}
		if row != nil {
			rows = append(rows, *row)
			summary.Matched++
		}

		if r.Store != nil {
			err = r.Store.MarkSeen(ctx, ref.Legislature, ref.Session, ref.Billno)
			if err != nil {
				return rows, summary, err
			}
		}
	}

	span.SetAttributes(
		attribute.Int("total", summary.Total),
		attribute.Int("matched", summary.Matched),
		attribute.Int("skipped", summary.Skipped),
		attribute.Int("failed", summary.Failed),
	)
	return rows, summary, nil
}

func (r Runner) processOne(ctx context.Context, proc Processor, ref BillRef) (*export.Row, error) {
	ctx, span := tracer.Start(ctx, "processOne")
	defer span.End()

	span.SetAttributes(
		attribute.String("legislature", ref.Legislature),
		attribute.String("session", ref.Session),
		attribute.String("billno", ref.Billno),
	)

	row, err := proc.Process(ctx, ref)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return row, nil
}
