package loader

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
)

// ShaderRequest names one shader file to load.
type ShaderRequest struct {
	// Key is the cache key the parsed shader is stored under.
	Key string
	// Type is the pipeline stage the shader is parsed for.
	Type shader.ShaderType
	// Path is the WGSL source file.
	Path string
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	shaderCache map[string]shader.Shader

	workers   int
	queueSize int
	pool      worker.DynamicWorkerPool
}

// Loader reads and parses shader sources at startup and caches them by key.
// Files are read concurrently on a worker pool; callers block until every request finished.
type Loader interface {
	// LoadShaders reads and parses every request concurrently and caches the results.
	// Requests whose key is already cached are skipped. Every request runs even if some fail.
	//
	// Parameters:
	//   - requests: the shaders to load
	//
	// Returns:
	//   - error: the joined errors of all failed requests, or nil
	LoadShaders(requests ...ShaderRequest) error

	// Shader retrieves a cached shader by key. Returns nil if not found.
	//
	// Parameters:
	//   - key: the cache key to look up
	//
	// Returns:
	//   - shader.Shader: the cached shader or nil
	Shader(key string) shader.Shader

	// Shaders returns a copy of the shader cache.
	//
	// Returns:
	//   - map[string]shader.Shader: all cached shaders keyed by name
	Shaders() map[string]shader.Shader
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		shaderCache: make(map[string]shader.Shader),
		workers:     2,
		queueSize:   16,
	}

	for _, option := range options {
		option(l)
	}

	// Workers exit after a second idle, so the pool costs nothing once startup loading is done.
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, 1*time.Second)
	return l
}

func (l *loader) LoadShaders(requests ...ShaderRequest) error {
	seen := make(map[string]bool, len(requests))
	var pending []ShaderRequest
	var errs []error
	for _, req := range requests {
		if req.Key == "" {
			errs = append(errs, fmt.Errorf("shader request for %q has no key", req.Path))
			continue
		}
		if seen[req.Key] {
			errs = append(errs, fmt.Errorf("shader %q requested twice", req.Key))
			continue
		}
		seen[req.Key] = true
		if l.Shader(req.Key) != nil {
			continue
		}
		pending = append(pending, req)
	}

	results := make([]error, len(pending))

	// The pool has no per-batch completion signal, so a WaitGroup is the barrier.
	var wg sync.WaitGroup
	for i, req := range pending {
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()

				s, err := shader.NewShader(req.Key, req.Type, req.Path)
				if err != nil {
					results[i] = err
					return nil, err
				}

				l.mu.Lock()
				l.shaderCache[req.Key] = s
				l.mu.Unlock()

				common.Logger().Debug("loaded shader", "key", req.Key, "stage", req.Type, "path", req.Path)
				return s, nil
			},
		})
	}
	wg.Wait()

	for _, err := range results {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *loader) Shader(key string) shader.Shader {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.shaderCache[key]
}

func (l *loader) Shaders() map[string]shader.Shader {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]shader.Shader, len(l.shaderCache))
	for k, v := range l.shaderCache {
		out[k] = v
	}
	return out
}
