package bestfirst

import "context"

// Observer is notified when a search run starts and finishes.
type Observer interface {
	// SearchStarted may return a derived context, e.g. one carrying a span.
	SearchStarted(contextObject context.Context) context.Context
	SearchFinished(contextObject context.Context, stats Stats)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) SearchStarted(contextObject context.Context) context.Context { return contextObject }
func (NopObserver) SearchFinished(context.Context, Stats)                       {}
