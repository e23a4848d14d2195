package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/doxhund"
	"github.com/fwojciec/doxhund/analyze"
	"github.com/fwojciec/doxhund/bloom"
	"github.com/fwojciec/doxhund/fs"
	"github.com/fwojciec/doxhund/metrics"
	"github.com/fwojciec/doxhund/ner"
	"github.com/fwojciec/doxhund/perceptron"
	"github.com/fwojciec/doxhund/prose"
	doxslog "github.com/fwojciec/doxhund/slog"
	"github.com/fwojciec/doxhund/sqlite"
	gometrics "github.com/rcrowley/go-metrics"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Bloom filter sizing for duplicate detection within one run.
const (
	seenExpectedArticles = 10000
	seenFalsePositive    = 0.01
)

// Main represents the program.
type Main struct {
	// Model and database paths. Set before calling Run().
	ModelPath string
	DBPath    string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ModelPath: defaultModelPath(),
		DBPath:    defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Metrics: gometrics.NewRegistry(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("doxhund"),
		kong.Description("Extract named entities and keywords from news articles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'doxhund --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	if cli.Model != "" {
		m.ModelPath = cli.Model
	}
	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Verbose = cli.Verbose
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// The database backs article storage and, optionally, the model.
	needDB := cli.Store == storeSQLite || cmd == "list" || cmd == "delete" || (cmd == "extract" && !cli.Extract.NoStore)
	if needDB {
		if dir := filepath.Dir(m.DBPath); dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOXHUND_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		var articles doxhund.ArticleService = sqlite.NewArticleService(m.DB)
		if cli.Verbose {
			articles = doxslog.NewLoggingArticleService(articles, deps.Logger)
		}
		deps.Articles = articles
	}

	var snapshots doxhund.SnapshotStore
	if cli.Store == storeSQLite {
		snapshots = sqlite.NewSnapshotStore(m.DB)
	} else {
		snapshots = fs.NewFileStore(m.ModelPath)
	}
	if cli.Verbose {
		snapshots = doxslog.NewLoggingSnapshotStore(snapshots, deps.Logger)
	}
	deps.Snapshots = snapshots

	if cmd == "tag" || cmd == "extract" {
		loaded, err := perceptron.Load(ctx, snapshots)
		if err != nil {
			if doxhund.ErrorCode(err) == doxhund.ENOTFOUND {
				fmt.Fprintln(stderr, "Hint: Run 'doxhund train CORPUS' to create a model")
			}
			return fmt.Errorf("failed to load model: %w", err)
		}

		var tagger doxhund.Tagger = metrics.NewMeteredTagger(loaded, deps.Metrics)
		if cli.Verbose {
			tagger = doxslog.NewLoggingTagger(tagger, deps.Logger)
		}
		deps.Tagger = tagger
	}

	if cmd == "extract" {
		var extractor doxhund.EntityExtractor = ner.NewExtractor(deps.Tagger, prose.NewSegmenter())
		extractor = metrics.NewMeteredExtractor(extractor, deps.Metrics)
		if cli.Verbose {
			extractor = doxslog.NewLoggingExtractor(extractor, deps.Logger)
		}
		deps.Analyzer = &analyze.Analyzer{
			Extractor:   extractor,
			Articles:    deps.Articles,
			Seen:        bloom.NewFilter(seenExpectedArticles, seenFalsePositive),
			Concurrency: cli.Extract.Concurrency,
		}
		if cli.Extract.Out != "" {
			deps.Reports = fs.NewWriter(cli.Extract.Out)
		}
	}

	return kongCtx.Run(deps)
}

func defaultModelPath() string {
	if path := os.Getenv("DOXHUND_MODEL"); path != "" {
		return path
	}
	return filepath.Join(defaultDir(), "tagger.gob")
}

func defaultDBPath() string {
	if path := os.Getenv("DOXHUND_DB"); path != "" {
		return path
	}
	return filepath.Join(defaultDir(), "doxhund.db")
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".doxhund")
}
