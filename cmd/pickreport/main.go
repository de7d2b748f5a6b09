// Command pickreport analyzes WMS pick exports offline. For each input file it
// writes <base>_delays.csv and <base>_aggregates.csv, beside the input unless
// -out is given, and prints the ten longest delays.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"pick-analytics-service/internal/adapters/cache"
	"pick-analytics-service/internal/adapters/export"
	"pick-analytics-service/internal/adapters/ingest"
	"pick-analytics-service/internal/config"
	"pick-analytics-service/internal/domain"
	"pick-analytics-service/internal/platform/db"
	"pick-analytics-service/internal/platform/obs"
	"pick-analytics-service/internal/ports"
	"pick-analytics-service/internal/services"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const topDelays = 10

type output struct {
	path  string
	write func(io.Writer) error
}

type report struct {
	source string
	delays []domain.SequencedEvent
	files  []string
}

func main() {
	_ = godotenv.Load()
	log := obs.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	opts := cfg.Analysis

	var (
		outDir    = flag.String("out", "", "output directory (default: next to each input)")
		cachePath = flag.String("cache", "", "sqlite file caching analyses between runs")
		workbook  = flag.Bool("xlsx", false, "also write <base>_report.xlsx")
		parallel  = flag.Int("parallel", runtime.GOMAXPROCS(0), "files analyzed concurrently")
		breaks    = flag.String("breaks", opts.Breaks.String(), "break windows, HH:MM-HH:MM,...")
	)
	flag.Float64Var(&opts.IdleThresholdMinutes, "threshold", opts.IdleThresholdMinutes, "delay threshold in net minutes")
	flag.IntVar(&opts.RowChangePenalty, "penalty", opts.RowChangePenalty, "distance penalty per row change")
	groupBy := flag.String("group-by", string(opts.GroupBy), "Delivery or TransferOrder")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: pickreport [flags] export.csv|export.xlsx ...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	opts.GroupBy = domain.GroupField(*groupBy)
	if opts.Breaks, err = domain.ParseBreakCalendar(*breaks); err != nil {
		log.Fatal(err)
	}
	if err := obs.Configure(cfg.Log); err != nil {
		log.Fatal(err)
	}

	var resultCache ports.ResultCache
	if *cachePath != "" {
		conn, err := db.OpenSqlite(*cachePath)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		if err := cache.InitSqliteSchema(context.Background(), conn); err != nil {
			log.Fatal(err)
		}
		resultCache = cache.NewSqliteResultCache(conn)
	}

	svc := services.NewAnalysisService(ingest.NewParser(), resultCache, cfg.CacheTTL)
	reports, err := run(context.Background(), svc, opts, flag.Args(), *outDir, *workbook, *parallel)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range reports {
		printReport(os.Stdout, r, opts.IdleThresholdMinutes)
	}
}

// run analyzes every path with at most parallel files in flight. Each file
// gets its own engine state; reports come back in input order.
func run(ctx context.Context, svc *services.AnalysisService, opts services.Options, paths []string, outDir string, workbook bool, parallel int) ([]report, error) {
	reports := make([]report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			r, err := analyzeFile(ctx, svc, opts, path, outDir, workbook)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func analyzeFile(ctx context.Context, svc *services.AnalysisService, opts services.Options, path, outDir string, workbook bool) (report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return report{}, fmt.Errorf("read %s: %w", path, err)
	}

	a, err := svc.Analyze(ctx, services.AnalyzeRequest{Name: filepath.Base(path), Data: data, Options: opts})
	if err != nil {
		return report{}, err
	}

	delays := services.Delays(a, opts.IdleThresholdMinutes)
	aggs := services.SortedAggregates(a)

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	base := filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	r := report{source: a.Source, delays: delays}
	writes := []output{
		{base + "_delays.csv", func(w io.Writer) error { return export.WriteDelays(w, delays) }},
		{base + "_aggregates.csv", func(w io.Writer) error { return export.WriteAggregates(w, aggs) }},
	}
	if workbook {
		writes = append(writes, output{base + "_report.xlsx", func(w io.Writer) error {
			return export.WriteWorkbook(w,
				export.EventsTable("delays", delays),
				export.AggregatesTable("aggregates", aggs),
			)
		}})
	}

	for _, wr := range writes {
		if err := writeFile(wr.path, wr.write); err != nil {
			return report{}, err
		}
		r.files = append(r.files, wr.path)
	}
	return r, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func printReport(w io.Writer, r report, threshold float64) {
	fmt.Fprintf(w, "%s: %d delays over %g min\n", r.source, len(r.delays), threshold)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tCONFIRMED\tPREVIOUS\tNET MIN\tFROM\tTO\tDISTANCE")
	for i, ev := range r.delays {
		if i == topDelays {
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\t%s\t%d\n",
			ev.Actor,
			ev.ConfirmedAt.Format(export.TimeLayout),
			ev.PreviousConfirmedAt.Format(export.TimeLayout),
			ev.NetIdleMinutes(),
			ev.PreviousSourceBin,
			ev.SourceBin,
			ev.DistanceScore,
		)
	}
	_ = tw.Flush()

	for _, f := range r.files {
		fmt.Fprintf(w, "  wrote %s\n", f)
	}
	fmt.Fprintln(w)
}
