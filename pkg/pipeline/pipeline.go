// Package pipeline runs extraction and analysis over a directory of saved
// spec inputs with a bounded worker pool.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/w3c/specfacts/internal/log"
	"github.com/w3c/specfacts/internal/scanner"
	"github.com/w3c/specfacts/pkg/cache"
	"github.com/w3c/specfacts/pkg/cssvalue"
	"github.com/w3c/specfacts/pkg/extract"
	"github.com/w3c/specfacts/pkg/idlanalyzer"
	"github.com/w3c/specfacts/pkg/types"
)

// Options configures a pipeline run.
type Options struct {
	// Jobs bounds worker concurrency. Defaults to 4 when zero.
	Jobs int

	// Cache, when set, is consulted by content hash before re-analyzing
	// an input and updated with fresh extracts.
	Cache *cache.ExtractCache

	// Scan controls input discovery. Zero value means scanner defaults.
	Scan *scanner.Options

	Logger log.Logger
}

// Result is the outcome for one input file.
type Result struct {
	Path    string             `json:"path"`
	Extract *types.SpecExtract `json:"extract,omitempty"`
	Cached  bool               `json:"cached,omitempty"`
	Err     error              `json:"-"`
}

// Summary describes a whole run.
type Summary struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	CacheHits int           `json:"cache_hits"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Run scans root, processes every discovered input concurrently and
// returns the results ordered by input path regardless of which worker
// finished first.
func Run(ctx context.Context, root string, opts Options) ([]Result, Summary, error) {
	start := time.Now()

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = 4
	}

	scanOpts := scanner.DefaultOptions()
	if opts.Scan != nil {
		scanOpts = *opts.Scan
	}

	files, err := scanner.ScanWithOptions(root, scanOpts)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	logger.Debug("pipeline start", "root", root, "inputs", len(files), "jobs", jobs)

	type indexed struct {
		idx int
		res Result
	}

	var wg sync.WaitGroup
	resultChan := make(chan indexed, len(files))

	// Limit concurrency
	sem := make(chan struct{}, jobs)

	for i, file := range files {
		wg.Add(1)
		go func(idx int, file scanner.FileInfo) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				resultChan <- indexed{idx, Result{Path: file.Path, Err: ctx.Err()}}
				return
			default:
			}

			resultChan <- indexed{idx, processFile(file, opts.Cache, logger)}
		}(i, file)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, len(files))
	for r := range resultChan {
		results[r.idx] = r.res
	}

	summary := Summary{Total: len(files), Elapsed: time.Since(start)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		default:
			summary.Succeeded++
		}
		if r.Cached {
			summary.CacheHits++
		}
	}

	logger.Info("pipeline done",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"cache_hits", summary.CacheHits,
		"elapsed", summary.Elapsed)

	return results, summary, nil
}

// processFile extracts facts from one input, consulting the cache by
// content hash first.
func processFile(file scanner.FileInfo, c *cache.ExtractCache, logger log.Logger) Result {
	content, err := os.ReadFile(file.FullPath)
	if err != nil {
		return Result{Path: file.Path, Err: fmt.Errorf("reading %s: %w", file.Path, err)}
	}

	var key string
	if c != nil {
		key = cache.Key(content)
		if hit, ok := c.Get(key); ok {
			logger.Debug("cache hit", "path", file.Path)
			// Cached extracts may have been produced under another
			// path; the content is identical.
			e := *hit
			e.Spec = file.Path
			return Result{Path: file.Path, Extract: &e, Cached: true}
		}
	}

	ext := Extract(file.Path, file.Kind, string(content))

	if c != nil {
		c.Set(key, ext)
	}
	return Result{Path: file.Path, Extract: ext}
}

// Extract runs the analyzers appropriate for one input kind and collects
// non-fatal failures on the extract.
func Extract(path string, kind scanner.Kind, content string) *types.SpecExtract {
	ext := &types.SpecExtract{Spec: path}

	switch kind {
	case scanner.KindHTML:
		extractHTML(ext, content)
	case scanner.KindIDL:
		extractIDL(ext, content)
	case scanner.KindCSSGrammar:
		extractGrammarLines(ext, content)
	default:
		ext.Errors = append(ext.Errors, types.ExtractError{
			Source:  path,
			Message: fmt.Sprintf("unsupported input kind %q", kind),
		})
	}

	return ext
}

func extractHTML(ext *types.SpecExtract, content string) {
	doc, err := extract.Load(strings.NewReader(content))
	if err != nil {
		ext.Errors = append(ext.Errors, types.ExtractError{Source: ext.Spec, Message: err.Error()})
		return
	}

	if idlText := extract.IDLBlocks(doc); idlText != "" {
		analyzeIDL(ext, idlText)
	}

	for _, prop := range extract.Properties(doc) {
		addPropertyGrammar(ext, prop.Name, prop.Value)
	}
}

func extractIDL(ext *types.SpecExtract, content string) {
	analyzeIDL(ext, content)
}

func analyzeIDL(ext *types.SpecExtract, idlText string) {
	ext.Obsolete = idlanalyzer.UsesObsoleteSyntax(idlText)
	report, err := idlanalyzer.Analyze(idlText)
	if err != nil {
		ext.Errors = append(ext.Errors, types.ExtractError{Source: "idl", Message: err.Error()})
		return
	}
	ext.IDL = report
}

// extractGrammarLines parses a file of "property: value definition"
// lines. Blank lines and # comments are skipped.
func extractGrammarLines(ext *types.SpecExtract, content string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			ext.Errors = append(ext.Errors, types.ExtractError{
				Source:  "css",
				Message: fmt.Sprintf("malformed grammar line %q", line),
			})
			continue
		}
		addPropertyGrammar(ext, strings.TrimSpace(name), strings.TrimSpace(value))
	}
}

func addPropertyGrammar(ext *types.SpecExtract, name, value string) {
	entry := types.PropertyGrammar{Name: name, Value: value}

	node, err := cssvalue.Parse(value)
	if err != nil {
		ext.Errors = append(ext.Errors, types.ExtractError{
			Source:  "css:" + name,
			Message: err.Error(),
		})
	} else {
		entry.Grammar = node
		if ext.CSS == nil {
			ext.CSS = make(map[string]*cssvalue.Node)
		}
		ext.CSS[name] = node
	}

	ext.Properties = append(ext.Properties, entry)
}
