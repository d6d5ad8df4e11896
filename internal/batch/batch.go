// Package batch analyzes photos from disk with a bounded number of workers.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/analyzer"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/audit"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider"
)

const defaultConcurrency = 4

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Result is the outcome for one file. Exactly one of Analysis and Err is set.
type Result struct {
	Path     string           `json:"path"`
	Faces    int              `json:"faces"`
	Analysis *domain.Analysis `json:"analysis,omitempty"`
	Err      error            `json:"-"`
	Error    string           `json:"error,omitempty"`
}

type Analyzer struct {
	engine      *analyzer.Engine
	provider    provider.LandmarkProvider
	auditLogger audit.Logger
	concurrency int
}

func New(engine *analyzer.Engine, landmarkProvider provider.LandmarkProvider, concurrency int) *Analyzer {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Analyzer{
		engine:      engine,
		provider:    landmarkProvider,
		auditLogger: &audit.NoOpLogger{},
		concurrency: concurrency,
	}
}

func (a *Analyzer) WithAuditLogger(auditLogger audit.Logger) *Analyzer {
	if auditLogger != nil {
		a.auditLogger = auditLogger
	}
	return a
}

// AnalyzeFile detects faces in one photo and analyzes the first (largest) one
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) Result {
	res := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return res.fail(fmt.Errorf("read %s: %w", path, err))
	}

	faces, err := a.provider.DetectFaces(ctx, data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidImage) {
			a.record(ctx, audit.Event{
				EventType: audit.EventImageRejected,
				Source:    string(domain.SourceFile),
				Provider:  a.provider.Name(),
				Error:     err.Error(),
				Metadata:  map[string]string{"file": filepath.Base(path)},
			})
		}
		return res.fail(fmt.Errorf("%s: %w", a.provider.Name(), err))
	}

	res.Faces = len(faces)
	if len(faces) == 0 {
		a.record(ctx, audit.Event{
			EventType: audit.EventNoFaceDetected,
			Source:    string(domain.SourceFile),
			Provider:  a.provider.Name(),
			Metadata:  map[string]string{"file": filepath.Base(path)},
		})
		return res.fail(domain.ErrNoFaceDetected)
	}

	res.Analysis = a.engine.Analyze(domain.SourceFile, faces[0].Landmarks, faces[0].BoundingBox)
	a.record(ctx, audit.Event{
		EventType:  audit.EventAnalysisCompleted,
		AnalysisID: res.Analysis.ID.String(),
		Source:     string(domain.SourceFile),
		Provider:   a.provider.Name(),
		Success:    true,
		Metadata: map[string]string{
			"file":       filepath.Base(path),
			"face_shape": string(res.Analysis.FaceShape),
		},
	})

	return res
}

// AnalyzeFiles runs AnalyzeFile over paths. Results keep the order of paths;
// onDone, when set, is called once per file as it finishes.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string, onDone func(Result)) []Result {
	results := make([]Result, len(paths))
	sem := make(chan struct{}, a.concurrency)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			var res Result
			if err := ctx.Err(); err != nil {
				res = Result{Path: p}.fail(err)
			} else {
				res = a.AnalyzeFile(ctx, p)
			}

			results[idx] = res
			if onDone != nil {
				mu.Lock()
				onDone(res)
				mu.Unlock()
			}
		}(i, path)
	}

	wg.Wait()
	return results
}

func (a *Analyzer) record(ctx context.Context, event audit.Event) {
	// the CLI has no one to report audit failures to
	_ = a.auditLogger.Log(ctx, event)
}

func (r Result) fail(err error) Result {
	r.Err = err
	r.Error = err.Error()
	return r
}

// IsImageFile reports whether name has a supported image extension
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// CollectImages expands paths into image files. Files are taken as given;
// directories are listed, and walked when recursive is set.
func CollectImages(paths []string, recursive bool) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		if recursive {
			err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && IsImageFile(d.Name()) {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("cannot walk folder %s: %w", path, err)
			}
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read folder %s: %w", path, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && IsImageFile(entry.Name()) {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}

	return files, nil
}
