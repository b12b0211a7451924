// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about input import and render stages.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the renderer stays
// free of any backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetInputHooks(&myInputHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnStageComplete(ctx, observability.StageLayout, d, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names a step of the render pipeline.
type Stage string

// Render pipeline stages in execution order.
const (
	StageValidate Stage = "validate"
	StageLayout   Stage = "layout"
	StageCompose  Stage = "compose"
	StageSummary  Stage = "summary"
	StageAssemble Stage = "assemble"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the render pipeline.
type RenderHooks interface {
	// OnRenderStart is called before validation with the input dimensions.
	OnRenderStart(ctx context.Context, series, bins int)

	// OnStageComplete is called after every stage, including failed ones.
	OnStageComplete(ctx context.Context, stage Stage, duration time.Duration, err error)

	// OnRenderComplete is called once with the number of emitted lines.
	OnRenderComplete(ctx context.Context, lines int, duration time.Duration, err error)
}

// =============================================================================
// Input Hooks
// =============================================================================

// InputHooks receives events from input adapters.
type InputHooks interface {
	// OnImport records a successfully read input.
	OnImport(ctx context.Context, source, format string, series int)

	// OnImportError records an input that could not be read.
	OnImportError(ctx context.Context, source string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, int, int)                      {}
func (NoopRenderHooks) OnStageComplete(context.Context, Stage, time.Duration, error) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, int, time.Duration, error)  {}

// NoopInputHooks is a no-op implementation of InputHooks.
type NoopInputHooks struct{}

func (NoopInputHooks) OnImport(context.Context, string, string, int) {}
func (NoopInputHooks) OnImportError(context.Context, string, error)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	inputHooks  InputHooks  = NoopInputHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetInputHooks registers custom input hooks.
func SetInputHooks(h InputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		inputHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Input returns the registered input hooks.
func Input() InputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return inputHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	inputHooks = NoopInputHooks{}
}
