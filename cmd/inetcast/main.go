// Command inetcast converts newline-delimited IPv4 literals into Arrow
// record batches carrying a typed inet column, optionally writing them out
// as an Arrow IPC file.
//
// Empty input lines become null elements. The first malformed literal aborts
// the run with an error naming the literal, the violated rule, the row and
// the batch.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/columnkit/inet/pkg/inet"
	"github.com/columnkit/inet/pkg/inetcast"
	"github.com/columnkit/inet/pkg/inettype"
)

type config struct {
	cast      inetcast.Config
	input     string
	output    string
	batchSize int
	verify    bool
	logLevel  string
}

func main() {
	var cfg config
	cfg.cast.RegisterFlags(flag.CommandLine)
	flag.StringVar(&cfg.input, "input", "-", "File with one address literal per line, - for stdin. Empty lines become nulls.")
	flag.StringVar(&cfg.output, "output", "", "Optional Arrow IPC file to write the converted records to.")
	flag.IntVar(&cfg.batchSize, "batch-size", 8192, "Rows per record batch.")
	flag.BoolVar(&cfg.verify, "verify", false, "Render converted columns back to text and check they parse to the same value.")
	flag.StringVar(&cfg.logLevel, "log.level", "info", "Log level: debug, info, warn, error.")
	flag.Parse()

	if cfg.batchSize < 1 {
		stdlog.Fatal("batch size must be at least 1")
	}

	logger := newLogger(cfg.logLevel)
	if err := run(context.Background(), cfg, logger); err != nil {
		stdlog.Fatal(err)
	}
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

func run(ctx context.Context, cfg config, logger log.Logger) error {
	if err := inettype.Register(); err != nil {
		return fmt.Errorf("registering inet type: %w", err)
	}

	in := os.Stdin
	if cfg.input != "-" {
		f, err := os.Open(cfg.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	mem := memory.DefaultAllocator
	recs, err := readBatches(mem, cfg, in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.input, err)
	}
	defer releaseAll(recs)

	conv, err := inetcast.NewConverter(cfg.cast, mem, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	start := time.Now()
	converted, err := conv.ConvertRecords(ctx, recs)
	if err != nil {
		return err
	}
	defer releaseAll(converted)

	level.Info(logger).Log(
		"msg", "converted",
		"records", len(converted),
		"rows", humanize.Comma(conv.Rows()),
		"duration", time.Since(start),
	)

	if cfg.verify {
		if err := verifyRoundTrip(cfg, mem, converted); err != nil {
			return fmt.Errorf("verifying: %w", err)
		}
		level.Info(logger).Log("msg", "round trip verified", "records", len(converted))
	}

	if cfg.output != "" {
		if err := writeIPC(cfg.output, converted); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.output, err)
		}
		level.Info(logger).Log("msg", "wrote output", "path", cfg.output)
	}
	return nil
}

// readBatches splits the input into record batches of at most cfg.batchSize
// rows, each holding a single nullable string column named after the
// configured cast column.
func readBatches(mem memory.Allocator, cfg config, r io.Reader) ([]arrow.Record, error) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: cfg.cast.Column, Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	var recs []arrow.Record
	b := array.NewStringBuilder(mem)
	defer b.Release()

	flush := func() {
		if b.Len() == 0 {
			return
		}
		col := b.NewStringArray()
		recs = append(recs, array.NewRecord(schema, []arrow.Array{col}, int64(col.Len())))
		col.Release()
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			b.AppendNull()
		} else {
			b.Append(line)
		}
		if b.Len() >= cfg.batchSize {
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		releaseAll(recs)
		return nil, err
	}
	flush()
	return recs, nil
}

// verifyRoundTrip renders every converted column back to text and checks the
// text parses to the same typed value.
func verifyRoundTrip(cfg config, mem memory.Allocator, recs []arrow.Record) error {
	render := inetcast.InetToVarchar(inetcast.Options{Render: true})

	for n, rec := range recs {
		indices := rec.Schema().FieldIndices(cfg.cast.Column)
		if len(indices) == 0 {
			return fmt.Errorf("record %d: column %q missing", n, cfg.cast.Column)
		}
		col := rec.Column(indices[0]).(*inettype.Array)

		out, err := render(mem, col)
		if err != nil {
			return fmt.Errorf("record %d: %w", n, err)
		}
		text := out.(*array.String)

		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				continue
			}
			back, err := inet.Parse([]byte(text.Value(i)))
			if err == nil && back != col.Value(i) {
				err = fmt.Errorf("%q does not round trip", text.Value(i))
			}
			if err != nil {
				out.Release()
				return fmt.Errorf("record %d row %d: %w", n, i, err)
			}
		}
		out.Release()
	}
	return nil
}

func writeIPC(path string, recs []arrow.Record) error {
	if len(recs) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(recs[0].Schema()))
	if err != nil {
		f.Close()
		return err
	}
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			w.Close()
			f.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func releaseAll(recs []arrow.Record) {
	for _, rec := range recs {
		rec.Release()
	}
}
