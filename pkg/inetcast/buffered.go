package inetcast

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
)

// BufferedPipeline is a pipeline that reads from a fixed set of Arrow
// records. It serves as a source for testing and data injection.
type BufferedPipeline struct {
	records []arrow.Record
	current int
}

var _ Pipeline = (*BufferedPipeline)(nil)

// NewBufferedPipeline creates a new BufferedPipeline from a set of Arrow
// records. The pipeline returns these records in sequence, retaining each of
// them until Close.
func NewBufferedPipeline(records ...arrow.Record) *BufferedPipeline {
	for _, rec := range records {
		if rec != nil {
			rec.Retain()
		}
	}

	return &BufferedPipeline{records: records}
}

// Read implements Pipeline.
// It advances to the next record and returns EOF when all records have been
// read.
func (p *BufferedPipeline) Read(ctx context.Context) (arrow.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.current >= len(p.records) {
		return nil, EOF
	}

	rec := p.records[p.current]
	p.current++
	rec.Retain()
	return rec, nil
}

// Close implements Pipeline.
// It releases all records being held.
func (p *BufferedPipeline) Close() {
	for _, rec := range p.records {
		if rec != nil {
			rec.Release()
		}
	}
	p.records = nil
}
