package loader

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the maximum number of concurrent file readers. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithQueueSize sets how many load tasks may wait for a worker. Values below 1 are ignored.
//
// Parameters:
//   - n: the queue capacity
//
// Returns:
//   - LoaderBuilderOption: a function that applies the queue size option to a loader
func WithQueueSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// WithShader pre-populates the shader cache.
//
// Parameters:
//   - key: the cache key for the shader
//   - s: the shader to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the shader option to a loader
func WithShader(key string, s shader.Shader) LoaderBuilderOption {
	return func(l *loader) {
		l.shaderCache[key] = s
	}
}
