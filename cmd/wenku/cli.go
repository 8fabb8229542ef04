package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/build"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Resources wenku.ResourceStore
	Builder   *build.Builder
	Articles  wenku.ArticleService
	Walker    wenku.ArticleWalker
	Tagger    wenku.Tagger
	TagWriter wenku.TagWriter

	// NewID returns the ID of a new resource record.
	NewID func() string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigDir  string        `name:"config-dir" default:"config" env:"WENKU_CONFIG_DIR" help:"Directory of resource records"`
	RawDir     string        `name:"raw-dir" default:"raw" env:"WENKU_RAW_DIR" help:"Directory resource paths are relative to"`
	CacheDir   string        `name:"cache-dir" default:"ocr_cache" env:"WENKU_CACHE_DIR" help:"OCR cache directory"`
	PatchDir   string        `name:"patch-dir" default:"patches" env:"WENKU_PATCH_DIR" help:"Patch file directory"`
	ParsedDir  string        `name:"parsed-dir" default:"parsed" env:"WENKU_PARSED_DIR" help:"Output directory of parsed articles"`
	DB         string        `name:"db" env:"WENKU_DB" help:"SQLite article index, disabled when empty"`
	Engine     string        `default:"paddle" enum:"paddle,tesseract" env:"WENKU_OCR_ENGINE" help:"Image OCR engine (paddle, tesseract)"`
	OCRCommand string        `name:"ocr-command" default:"python3 /app/ocr.py" env:"WENKU_OCR_COMMAND" help:"Command running the paddle OCR script"`
	OpenCC     string        `name:"opencc" env:"WENKU_OPENCC" help:"OpenCC conversion applied to article text, disabled when empty (e.g. t2s, tw2s, hk2s)"`
	Dictionary string        `env:"WENKU_TAG_DICTIONARY" help:"Tag dictionary replacing the built-in one"`
	Timeout    time.Duration `help:"Stop batch commands cleanly after this long (0 for no limit)"`
	Verbose    bool          `short:"v" help:"Log debug output"`

	OCR    OCRCmd    `cmd:"" help:"Recognize configured pages into the OCR cache"`
	Build  BuildCmd  `cmd:"" help:"Parse, patch and write articles"`
	Tags   TagsCmd   `cmd:"" help:"Rebuild tag files of parsed articles"`
	Date   DateCmd   `cmd:"" help:"Print the parsed form of a date string"`
	Init   InitCmd   `cmd:"" help:"Create a resource record with a new ID"`
	Schema SchemaCmd `cmd:"" help:"Print the JSON schema of resource records"`
	List   ListCmd   `cmd:"" help:"List indexed articles"`
	Show   ShowCmd   `cmd:"" help:"Show an indexed article"`
}

// OCRCmd is the "ocr" subcommand.
type OCRCmd struct {
	Documents   []string `arg:"" optional:"" help:"Resource IDs (default all)"`
	Concurrency int      `short:"c" default:"1" help:"Pages recognized in parallel"`
	Rate        float64  `env:"WENKU_OCR_RATE" help:"Maximum pages sent to the engine per second (0 for no limit)"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Documents []string `arg:"" optional:"" help:"Resource IDs (default all)"`
}

// TagsCmd is the "tags" subcommand.
type TagsCmd struct{}

// DateCmd is the "date" subcommand.
type DateCmd struct {
	Text           string `arg:"" help:"Date string"`
	RemoveUnknowns bool   `help:"Drop characters that cannot be part of a date first"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	Path   string `arg:"" help:"Source path relative to the raw directory"`
	Parser string `short:"p" default:"automation" help:"Parser ID"`
	Type   string `short:"t" default:"pdf" enum:"pdf,img" help:"Page source type (pdf, img)"`
}

// SchemaCmd is the "schema" subcommand.
type SchemaCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Document string `short:"d" help:"Only articles of this document"`
	Tag      string `help:"Only articles with this tag"`
	Title    string `help:"Only titles containing this text"`
	Limit    int    `default:"50" help:"Maximum number of articles"`
	Offset   int    `help:"Articles to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Article ID"`
	JSON bool   `help:"Print the record as JSON"`
}
