package inetcast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// ErrNoColumn flags a record without a column of the configured name.
var ErrNoColumn = errors.New("column not found")

// Converter rewrites one string column of each record into the inet
// extension type, leaving every other column untouched.
type Converter struct {
	cfg     Config
	mem     memory.Allocator
	cast    CastFunc
	logger  log.Logger
	metrics *metrics
	reg     prometheus.Registerer

	rows atomic.Int64
}

// NewConverter returns a converter for cfg. mem defaults to
// [memory.DefaultAllocator] and logger to a nop logger; reg may be nil to
// skip metrics registration.
func NewConverter(cfg Config, mem memory.Allocator, logger log.Logger, reg prometheus.Registerer) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	m := newMetrics()
	if reg != nil {
		if err := m.Register(reg); err != nil {
			return nil, err
		}
	}

	return &Converter{
		cfg:     cfg,
		mem:     mem,
		cast:    VarcharToInet(cfg.options()),
		logger:  logger,
		metrics: m,
		reg:     reg,
	}, nil
}

// Rows returns the number of non-null rows converted since construction.
func (c *Converter) Rows() int64 { return c.rows.Load() }

// Unregister removes the converter's metrics from the registerer it was
// constructed with.
func (c *Converter) Unregister() {
	if c.reg != nil {
		c.metrics.Unregister(c.reg)
	}
}

// ConvertRecord returns rec with the configured column cast to inet. The
// field keeps its name and position and becomes nullable; every other column
// carries over as is. The input record is not modified; the caller owns the
// returned record. A malformed element fails the whole record with an error
// that wraps the offending [RowError].
func (c *Converter) ConvertRecord(ctx context.Context, rec arrow.Record) (arrow.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	schema := rec.Schema()
	indices := schema.FieldIndices(c.cfg.Column)
	if len(indices) == 0 {
		c.metrics.failuresTotal.Inc()
		return nil, fmt.Errorf("column %q: %w", c.cfg.Column, ErrNoColumn)
	}
	idx := indices[0]

	col, err := c.cast(c.mem, rec.Column(idx))
	if err != nil {
		c.metrics.failuresTotal.Inc()
		return nil, fmt.Errorf("converting column %q: %w", c.cfg.Column, err)
	}
	defer col.Release()

	fields := make([]arrow.Field, schema.NumFields())
	columns := make([]arrow.Array, rec.NumCols())
	for i := 0; i < schema.NumFields(); i++ {
		fields[i] = schema.Field(i)
		columns[i] = rec.Column(i)
	}
	fields[idx] = arrow.Field{Name: c.cfg.Column, Type: col.DataType(), Nullable: true}
	columns[idx] = col

	md := schema.Metadata()
	out := array.NewRecord(arrow.NewSchema(fields, &md), columns, rec.NumRows())

	converted := int64(col.Len() - col.NullN())
	c.rows.Add(converted)
	c.metrics.rowsTotal.WithLabelValues(resultConverted).Add(float64(converted))
	c.metrics.rowsTotal.WithLabelValues(resultNull).Add(float64(col.NullN()))
	c.metrics.recordsTotal.Inc()
	c.metrics.recordSeconds.Observe(time.Since(start).Seconds())

	level.Debug(c.logger).Log("msg", "converted record", "column", c.cfg.Column, "rows", rec.NumRows(), "nulls", col.NullN())

	return out, nil
}

// ConvertRecords converts a fixed set of records, at most
// [Config.BatchParallelism] at a time. Outputs align with inputs by
// position. The first failing record cancels the remaining work, and no
// outputs are returned.
func (c *Converter) ConvertRecords(ctx context.Context, recs []arrow.Record) ([]arrow.Record, error) {
	ctx, span := tracer.Start(ctx, "Converter.ConvertRecords", trace.WithAttributes(
		attribute.Int("records", len(recs)),
		attribute.Int("parallelism", c.cfg.BatchParallelism),
	))
	defer span.End()

	out := make([]arrow.Record, len(recs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.BatchParallelism)
	for i, rec := range recs {
		g.Go(func() error {
			converted, err := c.ConvertRecord(ctx, rec)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			out[i] = converted
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		for _, rec := range out {
			if rec != nil {
				rec.Release()
			}
		}
		return nil, err
	}
	return out, nil
}

// NewCastPipeline returns a pipeline that converts the configured column of
// every record read from input.
func NewCastPipeline(input Pipeline, conv *Converter) Pipeline {
	p := newGenericPipeline(func(ctx context.Context, inputs []Pipeline) (arrow.Record, error) {
		rec, err := inputs[0].Read(ctx)
		if err != nil {
			return nil, err
		}
		defer rec.Release()
		return conv.ConvertRecord(ctx, rec)
	}, input)

	return tracePipeline("inetcast.Cast", p)
}

// NewCastPipelineFromConfig builds a [Converter] from cfg and wraps input
// with it. An invalid configuration yields a pipeline whose Read always
// fails with the validation error.
func NewCastPipelineFromConfig(input Pipeline, cfg Config, mem memory.Allocator, logger log.Logger, reg prometheus.Registerer) Pipeline {
	conv, err := NewConverter(cfg, mem, logger, reg)
	if err != nil {
		return errorPipeline(err)
	}
	return NewCastPipeline(input, conv)
}
