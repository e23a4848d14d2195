package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/doxhund"
	"github.com/fwojciec/doxhund/analyze"
	"github.com/fwojciec/doxhund/fs"
	gometrics "github.com/rcrowley/go-metrics"
)

// Model storage backends.
const (
	storeFile   = "file"
	storeSQLite = "sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Metrics   gometrics.Registry
	Snapshots doxhund.SnapshotStore
	Articles  doxhund.ArticleService
	Tagger    doxhund.Tagger
	Analyzer  *analyze.Analyzer
	Reports   *fs.Writer
	Verbose   bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Model   string `help:"Model file path (default: $DOXHUND_MODEL or ~/.doxhund/tagger.gob)"`
	DB      string `name:"db" help:"Database path (default: $DOXHUND_DB or ~/.doxhund/doxhund.db)"`
	Store   string `enum:"file,sqlite" default:"file" help:"Where the model is stored (file or sqlite)"`
	Verbose bool   `short:"v" help:"Log operations at debug level"`

	Train   TrainCmd   `cmd:"" help:"Train the part-of-speech tagger on a tagged corpus"`
	Tag     TagCmd     `cmd:"" help:"Print part-of-speech tags for text"`
	Extract ExtractCmd `cmd:"" help:"Extract names and keywords from article text files"`
	List    ListCmd    `cmd:"" help:"List analyzed articles"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an analyzed article"`
}

// TrainCmd is the "train" subcommand.
type TrainCmd struct {
	Corpus     string `arg:"" type:"existingfile" help:"Corpus file with one 'word tag' pair per line"`
	Iterations int    `short:"n" default:"5" help:"Training passes over the corpus"`
	Seed       int64  `help:"Shuffle seed for reproducible training (0 = random)"`
}

// TagCmd is the "tag" subcommand.
type TagCmd struct {
	Text     string `arg:"" help:"Text to tag; lines are sentences"`
	Entities bool   `short:"e" help:"Print proper-noun entities instead of tags"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files       []string `arg:"" help:"Plain-text article files"`
	Title       string   `short:"t" help:"Article title (applies to every file)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent analysis limit"`
	Out         string   `short:"o" type:"path" help:"Write a markdown report per article to this directory"`
	NoStore     bool     `help:"Do not store analyzed articles"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit int `short:"l" default:"50" help:"Maximum number of articles to list"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Article ID"`
	Force bool   `help:"Confirm deletion"`
}
