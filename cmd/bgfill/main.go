// Command bgfill fills the transparent parts of images with a solid color.
//
// Usage:
//
//	bgfill [flags] files...
//
// Each input is written next to itself (or into -out) as <name>.bg.<ext>.
// Pixels with alpha below 0.001 become the background color, partially
// transparent pixels are blended halfway toward it, opaque pixels are kept.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pixproc"
	"github.com/gogpu/pixproc/filter"
)

// config holds the parsed command line.
type config struct {
	bg     pixproc.RGBA
	region *pixproc.Rect // nil means the whole image
	band   int
	outDir string
	jobs   int
}

// update is a progress event for one file. done marks the final event,
// sent after the output has been written.
type update struct {
	file string
	out  string
	p    pixproc.Progress
	done bool
}

func main() {
	var (
		bg      = flag.String("bg", "#ffffff", "background color as #RGB, #RGBA, #RRGGBB or #RRGGBBAA")
		rect    = flag.String("rect", "", "region as x,y,w,h (default: whole image)")
		workers = flag.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		band    = flag.Int("band", 0, "rows per band (0 = whole region at once)")
		outDir  = flag.String("out", "", "output directory (default: next to each input)")
		jobs    = flag.Int("jobs", 2, "files processed concurrently")
		verbose = flag.Bool("v", false, "log engine activity to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: bgfill [flags] files...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		pixproc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	c, err := parseColor(*bg)
	if err != nil {
		log.Fatalf("bgfill: %v", err)
	}
	region, err := parseRect(*rect)
	if err != nil {
		log.Fatalf("bgfill: %v", err)
	}

	cfg := config{
		bg:     c,
		region: region,
		band:   *band,
		outDir: *outDir,
		jobs:   *jobs,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := pixproc.NewEngine(pixproc.WithWorkers(*workers))
	defer e.Close()

	p := message.NewPrinter(language.English)
	if err := run(ctx, e, cfg, flag.Args(), p); err != nil {
		stop()
		e.Close()
		log.Fatalf("bgfill: %v", err)
	}
}

// run processes files concurrently, at most cfg.jobs at a time. The first
// failure cancels the remaining files.
func run(ctx context.Context, e *pixproc.Engine, cfg config, files []string, p *message.Printer) error {
	if cfg.outDir != "" {
		if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
			return err
		}
	}

	updates := make(chan update, 64)
	reported := make(chan struct{})
	go func() {
		defer close(reported)
		report(p, updates)
	}()

	start := time.Now()
	var rows atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.jobs, 1))
	for _, file := range files {
		file := file
		g.Go(func() error {
			n, err := processFile(gctx, e, cfg, file, updates)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			rows.Add(int64(n))
			return nil
		})
	}
	err := g.Wait()

	close(updates)
	<-reported

	if err != nil {
		return err
	}
	p.Printf("%d files, %d rows in %v\n", len(files), rows.Load(), time.Since(start).Round(time.Millisecond))
	return nil
}

// processFile applies the background filter to one file and returns the
// number of rows processed.
func processFile(ctx context.Context, e *pixproc.Engine, cfg config, path string, updates chan<- update) (int, error) {
	pm, err := pixproc.LoadPixmap(path)
	if err != nil {
		return 0, err
	}

	region := pm.Rect()
	if cfg.region != nil {
		region = *cfg.region
	}

	out := pm.Clone()
	err = e.Run(ctx, filter.NewBackground(cfg.bg), out, pm, region, region,
		pixproc.WithBandHeight(cfg.band),
		pixproc.WithProgress(func(pr pixproc.Progress) {
			// Never stall a worker on a slow terminal.
			select {
			case updates <- update{file: path, p: pr}:
			default:
			}
		}))
	if err != nil {
		return 0, err
	}

	dst := outputPath(path, cfg.outDir)
	if err := out.Save(dst); err != nil {
		return 0, err
	}

	n := region.Intersect(pm.Rect()).Height
	updates <- update{file: path, out: dst, done: true}
	return max(n, 0), nil
}

// report prints progress at each quarter and a line per finished file.
func report(p *message.Printer, updates <-chan update) {
	quarter := make(map[string]int)
	for u := range updates {
		if u.done {
			p.Printf("%s -> %s\n", u.file, u.out)
			continue
		}
		q := int(u.p.Percent()) / 25
		if q <= quarter[u.file] || q >= 4 {
			continue
		}
		quarter[u.file] = q
		p.Printf("%s: %d of %d rows\n", u.file, u.p.RowsProcessed, u.p.TotalRows)
	}
}

// outputPath returns <dir>/<name>.bg.<ext>. Extensions without an encoder
// fall back to .png.
func outputPath(in, dir string) string {
	ext := filepath.Ext(in)
	name := strings.TrimSuffix(filepath.Base(in), ext)

	switch ext = strings.ToLower(ext); ext {
	case ".png", ".bmp", ".tif", ".tiff":
	default:
		ext = ".png"
	}

	if dir == "" {
		dir = filepath.Dir(in)
	}
	return filepath.Join(dir, name+".bg"+ext)
}

// parseColor validates s as a hex color and converts it.
func parseColor(s string) (pixproc.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return pixproc.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return pixproc.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return pixproc.Hex(hex), nil
}

// parseRect parses "x,y,w,h". An empty string means no region.
func parseRect(s string) (*pixproc.Rect, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid rect %q: want x,y,w,h", s)
	}

	var v [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid rect %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] < 0 || v[3] < 0 {
		return nil, errors.New("invalid rect: negative size")
	}

	r := pixproc.NewRect(v[0], v[1], v[2], v[3])
	return &r, nil
}
