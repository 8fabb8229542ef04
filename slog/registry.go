// Package slog provides logging decorators for the wenku services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wenku"
)

// Ensure LoggingRegistry implements wenku.ParserRegistry.
var _ wenku.ParserRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a ParserRegistry so every parser it hands out logs
// its runs.
type LoggingRegistry struct {
	next   wenku.ParserRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next wenku.ParserRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(id string, p wenku.Parser) {
	r.next.Register(id, p)
}

// Get returns the wrapped registry's parser decorated with logging.
func (r *LoggingRegistry) Get(id string) (wenku.Parser, error) {
	p, err := r.next.Get(id)
	if err != nil {
		return nil, err
	}
	return NewLoggingParser(id, p, r.logger), nil
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []string {
	return r.next.List()
}

// Ensure LoggingParser implements wenku.Parser.
var _ wenku.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with logging.
type LoggingParser struct {
	id     string
	next   wenku.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser for the parser registered as id.
func NewLoggingParser(id string, next wenku.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{id: id, next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Parse(ctx context.Context, src *wenku.Source) (articles []*wenku.Article, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse",
			"parser", p.id,
			"resource", src.Resource.ID,
			"count", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(ctx, src)
}
