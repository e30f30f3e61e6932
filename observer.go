package classification

import (
	"go.uber.org/zap"
)

// EventKind identifies the step of the induction an Event reports on.
type EventKind int

const (
	// FeatureConsidered is emitted before partitioning a set on a feature.
	FeatureConsidered EventKind = iota
	// GainComputed is emitted with the information gain of a feature.
	GainComputed
	// FeatureSelected is emitted with the feature a decision node will test.
	FeatureSelected
	// LeafResolved is emitted with the class label of every leaf built.
	LeafResolved
)

func (k EventKind) String() string {
	switch k {
	case FeatureConsidered:
		return "feature considered"
	case GainComputed:
		return "gain computed"
	case FeatureSelected:
		return "feature selected"
	case LeafResolved:
		return "leaf resolved"
	}
	return "unknown"
}

// Event is a trace record of the induction of a tree.
type Event struct {
	Kind EventKind
	// Depth is the recursion depth, 1 for the root.
	Depth int
	// Samples is the number of samples of the set being processed.
	Samples int
	// Feature is the feature index, -1 for LeafResolved events.
	Feature int
	Gain    float64
	// Class is the label of the leaf for LeafResolved events, 0 otherwise.
	Class int
	// Reason tells why a leaf was resolved: "pure", "exhausted" or "empty branch".
	Reason string
}

/*
Observer is an interface wrapping the Observe method, that receives the
trace events of the induction of a tree.

Observers of builders with Parallel set must be safe for concurrent use.
*/
type Observer interface {
	Observe(Event)
}

/*
ObserverFunc wraps a function with the Observe method signature to
implement the Observer interface
*/
type ObserverFunc func(Event)

// Observe invokes the ObserverFunc with the given event.
func (of ObserverFunc) Observe(e Event) {
	of(e)
}

/*
NopObserver returns an Observer whose Observe method discards every event.
*/
func NopObserver() Observer {
	return ObserverFunc(func(Event) {})
}

/*
LogObserver takes a zap logger and returns an Observer that logs every
event at debug level with its fields.
*/
func LogObserver(logger *zap.Logger) Observer {
	logger = logger.Named("induction")
	return ObserverFunc(func(e Event) {
		if ce := logger.Check(zap.DebugLevel, e.Kind.String()); ce != nil {
			fields := []zap.Field{zap.Int("depth", e.Depth), zap.Int("samples", e.Samples)}
			switch e.Kind {
			case FeatureConsidered:
				fields = append(fields, zap.Int("feature", e.Feature))
			case GainComputed, FeatureSelected:
				fields = append(fields, zap.Int("feature", e.Feature), zap.Float64("gain", e.Gain))
			case LeafResolved:
				fields = append(fields, zap.Int("class", e.Class), zap.String("reason", e.Reason))
			}
			ce.Write(fields...)
		}
	})
}
