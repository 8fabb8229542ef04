// Package build drives batch runs: it fills the OCR cache and turns
// configured resources into persisted, patched and tagged articles.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/patch"
	"golang.org/x/sync/errgroup"
)

// Builder runs the batch stages over configuration records.
type Builder struct {
	// Engine recognises pages. It is normally the read-through cached
	// engine, so pages recognised by an earlier run are not redone.
	Engine    wenku.OCREngine
	Parsers   wenku.ParserRegistry
	Patches   wenku.PatchStore
	Converter wenku.TextConverter
	Tagger    wenku.Tagger
	Writers   []wenku.ArticleWriter
	Documents wenku.DocumentInfoWriter

	// RawDir is the root that resource paths are relative to.
	RawDir      string
	Defaults    wenku.OCRParams
	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Result holds the outcome of a batch stage.
type Result struct {
	Pages     int
	Articles  int
	Documents int
	Failed    int
	// TimedOut reports that the deadline stopped the batch early. Work
	// finished before that is kept.
	TimedOut bool
}

// ProgressEvent reports progress during a batch stage.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Item      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// pageJob is one page to recognise.
type pageJob struct {
	src    wenku.PageSource
	params wenku.OCRParams
}

func (j pageJob) String() string {
	return j.src.DocumentID + "/" + strconv.Itoa(j.src.Page)
}

// BuildCache recognises every page of the configured articles of each book.
// A page shared by two articles is recognised once, with the parameters of
// the first. Pages run concurrently up to Concurrency; once ctx is done no
// new page starts, while pages already started run to completion.
func (b *Builder) BuildCache(ctx context.Context, resources []*wenku.Resource, progress ProgressFunc) (*Result, error) {
	jobs, err := b.pageJobs(resources)
	if err != nil {
		return nil, err
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	total := len(jobs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	type pageResult struct {
		job     pageJob
		err     error
		skipped bool
	}
	resultCh := make(chan pageResult, total)

	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	go func() {
		for _, job := range jobs {
			g.Go(func() error {
				if ctx.Err() != nil {
					resultCh <- pageResult{job: job, skipped: true}
					return nil
				}
				_, err := recognizeWithRetry(ctx, b.Engine, job.src, job.params, delays, b.logger())
				resultCh <- pageResult{job: job, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{}
	completed := 0
	for r := range resultCh {
		if r.skipped {
			continue
		}
		completed++
		if r.err != nil {
			result.Failed++
			b.logger().Error("recognize page", "page", r.job.String(), "err", r.err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, Item: r.job.String(), Error: r.err})
			}
			continue
		}
		result.Pages++
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, Item: r.job.String()})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	}
	return b.finish(ctx, result)
}

// finish converts deadline expiry into a clean early stop.
func (b *Builder) finish(ctx context.Context, result *Result) (*Result, error) {
	switch err := ctx.Err(); {
	case err == nil:
		return result, nil
	case errors.Is(err, context.DeadlineExceeded):
		result.TimedOut = true
		b.logger().Warn("deadline reached, stopping batch", "pages", result.Pages, "articles", result.Articles)
		return result, nil
	default:
		return result, err
	}
}

func (b *Builder) pageJobs(resources []*wenku.Resource) ([]pageJob, error) {
	var jobs []pageJob
	for _, r := range resources {
		if r.Kind() != wenku.ResourceBook {
			continue
		}
		seen := make(map[int]bool)
		for i := range r.Options.Articles {
			a := &r.Options.Articles[i]
			for page := a.PageStart; page <= a.PageEnd; page++ {
				if seen[page] {
					continue
				}
				seen[page] = true
				src, err := b.pageSource(r, page)
				if err != nil {
					return nil, err
				}
				jobs = append(jobs, pageJob{src: src, params: r.Options.PageParams(b.Defaults, a, page)})
			}
		}
	}
	return jobs, nil
}

// pageSource locates page of r: the PDF itself, or <path>/<page>.jpg with
// a .png fallback.
func (b *Builder) pageSource(r *wenku.Resource, page int) (wenku.PageSource, error) {
	path := filepath.Join(b.RawDir, r.Path)
	switch r.Options.Type {
	case wenku.SourcePDF:
		return wenku.PageSource{DocumentID: r.ID, Path: path, Page: page, PDF: true}, nil
	case wenku.SourceImages:
		src := wenku.PageSource{DocumentID: r.ID, Path: filepath.Join(path, strconv.Itoa(page)+".jpg"), Page: page}
		if _, err := os.Stat(src.Path); errors.Is(err, os.ErrNotExist) {
			src.Path = filepath.Join(path, strconv.Itoa(page)+".png")
		}
		return src, nil
	default:
		return wenku.PageSource{}, wenku.Errorf(wenku.EINVALID, "resource %s: unknown source type %q", r.ID, r.Options.Type)
	}
}

// BuildArticles parses each resource and persists its articles. Non-book
// resources only get their metadata sidecar. A resource that fails is
// counted and logged and the batch moves on.
func (b *Builder) BuildArticles(ctx context.Context, resources []*wenku.Resource, progress ProgressFunc) (*Result, error) {
	total := len(resources)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	result := &Result{}
	completed := 0
	for _, r := range resources {
		if ctx.Err() != nil {
			break
		}
		n, err := b.buildResource(ctx, r)
		result.Articles += n
		// A document cut short by the context is not a failure; finish reports it.
		if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			break
		}
		completed++
		if err != nil {
			result.Failed++
			b.logger().Error("build document", "document", r.ID, "err", err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, Item: r.ID, Error: err})
			}
			continue
		}
		result.Documents++
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, Item: r.ID})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	}
	return b.finish(ctx, result)
}

// buildResource returns the number of articles written.
func (b *Builder) buildResource(ctx context.Context, r *wenku.Resource) (int, error) {
	if r.Kind() != wenku.ResourceBook {
		return 0, b.Documents.WriteDocumentInfo(ctx, r)
	}

	parser, err := b.Parsers.Get(r.ParserID)
	if err != nil {
		return 0, err
	}
	articles, err := parser.Parse(ctx, &wenku.Source{Resource: r, Path: filepath.Join(b.RawDir, r.Path)})
	if err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}

	n := 0
	for _, a := range articles {
		rec, err := b.Record(ctx, r.ID, a)
		if err != nil {
			return n, fmt.Errorf("article %q: %w", a.Title, err)
		}
		for _, w := range b.Writers {
			if err := w.WriteArticle(ctx, rec); err != nil {
				return n, fmt.Errorf("article %s: %w", rec.ArticleID, err)
			}
		}
		n++
	}
	if err := b.Documents.WriteDocumentInfo(ctx, r); err != nil {
		return n, err
	}
	return n, nil
}

// Record turns a parsed article into a persistable record: the identity is
// computed first, then text is converted, patches applied and tags derived.
// The parsed article is not modified.
func (b *Builder) Record(ctx context.Context, documentID string, parsed *wenku.Article) (*wenku.Record, error) {
	id := wenku.ArticleID(parsed)
	a := parsed.Clone()

	if b.Converter != nil {
		if err := convertArticle(ctx, b.Converter, a); err != nil {
			return nil, fmt.Errorf("convert: %w", err)
		}
	}

	if b.Patches != nil {
		patches, err := b.Patches.FindPatches(ctx, id, documentID)
		switch {
		case wenku.ErrorCode(err) == wenku.ENOTFOUND:
		case err != nil:
			return nil, err
		default:
			b.logger().Info("apply patches", "document", documentID, "article", id, "count", len(patches))
			if a, err = patch.Apply(a, patches); err != nil {
				return nil, err
			}
		}
	}

	tags := []wenku.Tag{}
	if b.Tagger != nil {
		tags = b.Tagger.Tags(a)
	}
	return &wenku.Record{DocumentID: documentID, ArticleID: id, Article: a, Tags: tags}, nil
}

func convertArticle(ctx context.Context, c wenku.TextConverter, a *wenku.Article) error {
	var err error
	convert := func(s string) string {
		if err != nil {
			return s
		}
		var out string
		out, err = c.ConvertText(ctx, s)
		return out
	}
	a.Alias = convert(a.Alias)
	a.Description = convert(a.Description)
	for i := range a.Parts {
		a.Parts[i].Text = convert(a.Parts[i].Text)
	}
	for i := range a.Comments {
		a.Comments[i] = convert(a.Comments[i])
	}
	return err
}

// RebuildTags re-derives the tags of every persisted article and returns
// the number of articles updated.
func RebuildTags(ctx context.Context, walker wenku.ArticleWalker, tagger wenku.Tagger, w wenku.TagWriter) (int, error) {
	n := 0
	err := walker.WalkArticles(ctx, func(rec *wenku.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.WriteTags(ctx, rec.DocumentID, rec.ArticleID, tagger.Tags(rec.Article)); err != nil {
			return fmt.Errorf("%s/%s: %w", rec.DocumentID, rec.ArticleID, err)
		}
		n++
		return nil
	})
	return n, err
}
