package inetcast

import (
	"context"
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("pkg/inetcast")

// EOF is returned by [Pipeline.Read] once the stream of records is
// exhausted.
var EOF = errors.New("pipeline exhausted") //nolint:revive,staticcheck

// Pipeline is a pull-based stream of Arrow record batches.
type Pipeline interface {
	// Read returns the next record, or EOF when no records are left. The
	// caller owns the returned record and must release it.
	Read(context.Context) (arrow.Record, error)
	// Close closes the resources of the pipeline.
	// The implementation must close all of the pipeline's inputs.
	Close()
}

type readFunc func(context.Context, []Pipeline) (arrow.Record, error)

// GenericPipeline implements [Pipeline] over a read function and a set of
// inputs.
type GenericPipeline struct {
	inputs []Pipeline
	read   readFunc
}

func newGenericPipeline(read readFunc, inputs ...Pipeline) *GenericPipeline {
	return &GenericPipeline{
		read:   read,
		inputs: inputs,
	}
}

var _ Pipeline = (*GenericPipeline)(nil)

// Read implements Pipeline.
func (p *GenericPipeline) Read(ctx context.Context) (arrow.Record, error) {
	if p.read == nil {
		return nil, EOF
	}
	return p.read(ctx, p.inputs)
}

// Close implements Pipeline.
func (p *GenericPipeline) Close() {
	for _, inp := range p.inputs {
		inp.Close()
	}
}

// errorPipeline returns a pipeline whose Read always fails with err.
func errorPipeline(err error) Pipeline {
	return newGenericPipeline(func(_ context.Context, _ []Pipeline) (arrow.Record, error) {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	})
}

type tracedPipeline struct {
	name  string
	inner Pipeline
}

var _ Pipeline = (*tracedPipeline)(nil)

// tracePipeline wraps a [Pipeline] to record each call to Read with a span.
func tracePipeline(name string, pipeline Pipeline) *tracedPipeline {
	return &tracedPipeline{
		name:  name,
		inner: pipeline,
	}
}

func (p *tracedPipeline) Read(ctx context.Context) (arrow.Record, error) {
	ctx, span := tracer.Start(ctx, p.name+".Read")
	defer span.End()

	res, err := p.inner.Read(ctx)
	if err != nil && !errors.Is(err, EOF) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return res, err
}

func (p *tracedPipeline) Close() { p.inner.Close() }
