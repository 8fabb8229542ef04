package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/build"
	"github.com/fwojciec/wenku/fs"
	"github.com/fwojciec/wenku/goquery"
	"github.com/fwojciec/wenku/htmltomarkdown"
	"github.com/fwojciec/wenku/layout"
	"github.com/fwojciec/wenku/opencc"
	"github.com/fwojciec/wenku/paddle"
	"github.com/fwojciec/wenku/pdf"
	"github.com/fwojciec/wenku/pdfcpu"
	"github.com/fwojciec/wenku/readability"
	wslog "github.com/fwojciec/wenku/slog"
	"github.com/fwojciec/wenku/sqlite"
	"github.com/fwojciec/wenku/tagger"
	"github.com/fwojciec/wenku/trafilatura"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite article index, opened when the CLI names one.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		Stdout: stdout,
		Stderr: stderr,
		NewID:  uuid.NewString,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wenku"),
		kong.Description("Turn scanned and archived documents into structured articles"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wenku --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cli.Timeout)
		defer cancel()
	}
	deps.Ctx = ctx

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	defer m.Close()
	if err := m.wire(cli, strings.Fields(kongCtx.Command())[0], deps); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wire builds the services the selected command needs.
func (m *Main) wire(cli *CLI, cmd string, deps *Dependencies) error {
	switch cmd {
	case "ocr", "build", "init":
		loader, err := fs.NewConfigLoader(cli.ConfigDir)
		if err != nil {
			return fmt.Errorf("failed to load resource schema: %w", err)
		}
		deps.Resources = loader
	}

	store := fs.NewArticleStore(cli.ParsedDir)
	cache := fs.NewOCRCache(cli.CacheDir)

	switch cmd {
	case "ocr":
		engine, err := newEngine(cli, deps.Logger)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
			return err
		}
		deps.Builder = &build.Builder{
			Engine:      fs.NewCachedEngine(cache, engine),
			RawDir:      cli.RawDir,
			Defaults:    wenku.DefaultOCRParams(),
			Concurrency: cli.OCR.Concurrency,
			Logger:      deps.Logger,
		}

	case "build":
		t, err := newTagger(cli.Dictionary)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
			return err
		}
		writers := []wenku.ArticleWriter{wslog.NewLoggingArticleWriter(store, deps.Logger)}
		if cli.DB != "" {
			if err := m.openDB(cli.DB, deps.Stderr); err != nil {
				return err
			}
			writers = append(writers, sqlite.NewArticleService(m.DB))
		}
		b := &build.Builder{
			Parsers:   newParsers(cache, deps.Logger),
			Patches:   fs.NewPatchStore(cli.PatchDir),
			Tagger:    t,
			Writers:   writers,
			Documents: store,
			RawDir:    cli.RawDir,
			Defaults:  wenku.DefaultOCRParams(),
			Logger:    deps.Logger,
		}
		if cli.OpenCC != "" {
			c, err := opencc.NewConverter(cli.OpenCC)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
				return err
			}
			b.Converter = c
		}
		deps.Builder = b

	case "tags":
		t, err := newTagger(cli.Dictionary)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
			return err
		}
		deps.Walker = store
		deps.Tagger = t
		deps.TagWriter = store

	case "list", "show":
		if cli.DB == "" {
			fmt.Fprintln(deps.Stderr, "Hint: set WENKU_DB or --db to the index written by 'wenku build'")
			return wenku.Errorf(wenku.EINVALID, "no article index configured")
		}
		if err := m.openDB(cli.DB, deps.Stderr); err != nil {
			return err
		}
		deps.Articles = sqlite.NewArticleService(m.DB)
	}
	return nil
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WENKU_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// newEngine assembles the OCR engine chain: PDF text layer, embedded PDF
// scans and page images, each call logged.
func newEngine(cli *CLI, logger *slog.Logger) (wenku.OCREngine, error) {
	var image wenku.OCREngine
	switch cli.Engine {
	case "tesseract":
		e, err := newTesseractEngine()
		if err != nil {
			return nil, err
		}
		image = e
	default:
		command := strings.Fields(cli.OCRCommand)
		if len(command) == 0 {
			return nil, wenku.Errorf(wenku.EINVALID, "empty OCR command")
		}
		image = paddle.NewEngine(command...)
	}
	var engine wenku.OCREngine = &build.EngineRouter{
		Text:  pdf.NewTextEngine(),
		Scan:  pdfcpu.NewImageEngine(image),
		Image: image,
	}
	if cli.OCR.Rate > 0 {
		engine = build.NewThrottledEngine(engine, cli.OCR.Rate)
	}
	return wslog.NewLoggingOCREngine(engine, logger), nil
}

// newParsers registers every parser under its ID.
func newParsers(cache wenku.OCRCache, logger *slog.Logger) wenku.ParserRegistry {
	registry := wslog.NewLoggingRegistry(build.NewRegistry(), logger)
	parsers := map[string]wenku.Parser{
		layout.ParserID:       layout.NewParser(cache),
		goquery.ParserID:      goquery.NewParser(goquery.NewPresets()),
		fs.ResultJSONParserID: &fs.ResultJSONParser{},
		fs.RecordDirParserID:  &fs.RecordDirParser{},
		fs.TextParserID:       &fs.TextParser{},
		build.HTMLParserID: &build.HTMLParser{
			Extractors: map[string]wenku.Extractor{
				"trafilatura": trafilatura.NewExtractor(),
				"readability": readability.NewExtractor(),
			},
			Default:   "trafilatura",
			Converter: htmltomarkdown.NewConverter(),
		},
	}
	for id, p := range parsers {
		registry.Register(id, p)
	}
	return registry
}

func newTagger(path string) (*tagger.Tagger, error) {
	if path == "" {
		return tagger.New(tagger.DefaultDictionary())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := tagger.LoadDictionary(f)
	if err != nil {
		return nil, err
	}
	return tagger.New(d)
}
