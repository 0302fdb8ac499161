package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Vasishta03/DataForge/internal/fallback"
	"github.com/Vasishta03/DataForge/internal/llm"
	"github.com/Vasishta03/DataForge/internal/prompt"
	"github.com/Vasishta03/DataForge/internal/reference"
	"github.com/Vasishta03/DataForge/internal/schema"
	"github.com/Vasishta03/DataForge/internal/validate"
)

// Request describes one keyword run.
type Request struct {
	Keyword    string
	Rows       int
	Variations int
}

// Config holds the orchestrator's tunables.
type Config struct {
	ReferenceDir string
	OutputDir    string
	MinRows      int
	MaxRows      int
	MaxTokens    int
	Temperature  float64
	MutationSeed int64
}

// Orchestrator drives the generation pipeline for one keyword at a
// time. The pipeline inside a run is strictly sequential; variations
// never interleave writes into the output directory.
type Orchestrator struct {
	cfg       Config
	provider  reference.Provider
	client    llm.Client
	extractor *schema.Extractor
	mutator   *schema.Mutator
	builder   *prompt.Builder
	validator *validate.Validator
	synth     *fallback.Synthesizer
	observer  Observer
	logger    *zap.Logger
}

// New creates an Orchestrator. provider and client may be nil; a nil
// provider behaves as an always-failing acquisition and a nil client
// as an unavailable generation service, both resolved through the
// usual substitution paths.
func New(cfg Config, provider reference.Provider, client llm.Client, observer Observer, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinRows <= 0 {
		cfg.MinRows = 1
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = fallback.MaxRows
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	return &Orchestrator{
		cfg:       cfg,
		provider:  provider,
		client:    client,
		extractor: schema.NewExtractor(logger),
		mutator:   schema.NewMutator(cfg.MutationSeed, logger),
		builder:   prompt.NewBuilder(),
		validator: validate.NewValidator(logger),
		synth:     fallback.NewSynthesizer(logger),
		observer:  observer,
		logger:    logger,
	}
}

// variationOutcome is the explicit two-branch decision for one
// variation: accepted remote text, or locally synthesized rows.
type variationOutcome struct {
	remote bool
	csv    string
}

// Run executes one keyword run end-to-end and always returns a sealed
// Result. stop may be nil. Errors in acquisition, extraction,
// generation, and validation are recovered through substitution; only
// output persistence failures (or a panic, reported as Failed) are
// terminal.
func (o *Orchestrator) Run(ctx context.Context, req Request, stop *StopToken) (res *Result) {
	res = newResult(req.Keyword)
	n := &notifier{obs: o.observer}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("run panicked", zap.Any("panic", r))
			res.seal(OutcomeFailed, fmt.Errorf("internal error: %v", r))
		}
	}()

	rows := clamp(req.Rows, o.cfg.MinRows, o.cfg.MaxRows)
	variations := req.Variations
	if variations <= 0 {
		variations = 1
	}
	bucket := schema.ResolveBucket(req.Keyword)

	o.logger.Info("run starting",
		zap.String("run_id", res.ID),
		zap.String("keyword", req.Keyword),
		zap.String("bucket", string(bucket)),
		zap.Int("rows", rows),
		zap.Int("variations", variations))

	outDir := filepath.Join(o.cfg.OutputDir, req.Keyword)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		n.progress(n.last, "Generation failed")
		n.status("Error: cannot create output directory")
		res.seal(OutcomeFailed, fmt.Errorf("create output dir: %w", err))
		return res
	}

	base := o.acquireSchema(ctx, req.Keyword, res, n)

	for i := 0; i < variations; i++ {
		if stop.Stopped() {
			n.progress(n.last, "Generation stopped")
			n.status("Generation stopped by user")
			o.logger.Info("run stopped", zap.String("run_id", res.ID), zap.Int("completed_variations", i))
			res.seal(OutcomeStopped, nil)
			return res
		}

		n.status(fmt.Sprintf("Generating variation %d/%d", i+1, variations))
		n.progress(0.4+float64(i)/float64(variations)*0.6, fmt.Sprintf("Generating dataset %d", i+1))

		mutated := o.mutator.Mutate(base)
		outcome := o.resolveVariation(ctx, mutated, rows, req.Keyword, bucket, i)

		path := filepath.Join(outDir, fmt.Sprintf("%s_data_%d.csv", req.Keyword, i+1))
		if err := os.WriteFile(path, []byte(outcome.csv+"\n"), 0o644); err != nil {
			n.progress(n.last, "Generation failed")
			n.status("Error: cannot write output file")
			res.seal(OutcomeFailed, fmt.Errorf("write %s: %w", path, err))
			return res
		}
		res.GeneratedFiles = append(res.GeneratedFiles, path)

		o.logger.Info("variation persisted",
			zap.String("run_id", res.ID),
			zap.Int("variation", i+1),
			zap.Bool("remote", outcome.remote),
			zap.String("file", path))
	}

	n.progress(1.0, "Generation complete")
	n.status("Generation completed successfully")
	res.seal(OutcomeCompleted, nil)
	o.logger.Info("run completed",
		zap.String("run_id", res.ID),
		zap.Int("files", len(res.GeneratedFiles)),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

// acquireSchema obtains the base schema for the run: search and
// download the reference dataset and extract its schema, substituting
// the built-in template at whichever step fails first.
func (o *Orchestrator) acquireSchema(ctx context.Context, keyword string, res *Result, n *notifier) *schema.Schema {
	n.status(fmt.Sprintf("Searching reference datasets for %q", keyword))
	n.progress(0.1, "Searching reference provider")

	refPath := o.acquireReference(ctx, keyword, n)
	res.ReferenceFile = refPath

	n.status("Analyzing dataset schema")
	n.progress(0.3, "Extracting schema")

	if refPath != "" {
		s, err := o.extractor.Extract(refPath, keyword)
		if err != nil {
			o.logger.Warn("schema extraction failed, using template", zap.Error(err))
		} else if verr := s.Validate(); verr != nil {
			o.logger.Warn("extracted schema invalid, using template", zap.Error(verr))
		} else {
			return s
		}
	}
	return schema.TemplateSchema(keyword)
}

// acquireReference returns a path to a reference CSV, or "" when even
// template substitution failed.
func (o *Orchestrator) acquireReference(ctx context.Context, keyword string, n *notifier) string {
	if o.provider != nil {
		hits, err := o.provider.Search(ctx, keyword)
		if err != nil {
			o.logger.Warn("reference search failed", zap.Error(err))
		} else if len(hits) > 0 {
			n.status("Downloading dataset: " + hits[0].Title)
			n.progress(0.2, "Downloading dataset")
			path, err := o.provider.Download(ctx, hits[0], o.cfg.ReferenceDir)
			if err == nil {
				return path
			}
			o.logger.Warn("reference download failed", zap.Error(err))
		}
	}

	path, err := reference.WriteTemplateCSV(keyword, o.cfg.ReferenceDir, o.logger)
	if err != nil {
		o.logger.Warn("template substitution failed", zap.Error(err))
		return ""
	}
	return path
}

// resolveVariation tries the remote service and falls back to local
// synthesis on any failure. The decision is returned as a value; the
// fallback branch can never fail.
func (o *Orchestrator) resolveVariation(ctx context.Context, s *schema.Schema, rows int, keyword string, bucket schema.DomainBucket, variation int) variationOutcome {
	if o.client != nil {
		p := o.builder.Build(s, rows, keyword, bucket)
		raw, err := o.client.Generate(ctx, p, o.cfg.MaxTokens, o.cfg.Temperature)
		if err != nil {
			o.logger.Warn("remote generation failed, using fallback",
				zap.Int("variation", variation+1), zap.Error(err))
		} else {
			cleaned, verr := o.validator.Validate(raw, s)
			if verr == nil {
				return variationOutcome{remote: true, csv: cleaned}
			}
			o.logger.Warn("remote output rejected, using fallback",
				zap.Int("variation", variation+1), zap.Error(verr))
		}
	}
	return variationOutcome{csv: o.synth.CSV(s, bucket, variation, rows)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
