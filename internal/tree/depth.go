package tree

// ProbeDepth returns the deepest nesting level reachable from rootPath, where
// the root is level 0 and every descent into a directory or onto a file adds
// one. Ignored entries do not count. An unreadable or missing root yields 0.
func ProbeDepth(rootPath string, options Options) int {
	maximumLevel := 0
	newWalker(options, nil).run(rootPath, func(entry Entry) bool {
		if entry.Level > maximumLevel {
			maximumLevel = entry.Level
		}
		return true
	})
	return maximumLevel
}

// DepthDecision records how a requested depth limit was reconciled with the
// project's natural depth.
type DepthDecision struct {
	Requested  int
	ProjectMax int
	Effective  int
	// Clamped is set when Effective was substituted for Requested.
	Clamped bool
}

// Unlimited reports whether rendering should not be depth limited.
func (decision DepthDecision) Unlimited() bool {
	return decision.Requested <= 0
}

// ReconcileDepth clamps a requested limit to projectMax. A requested value of
// zero or less means unlimited and is never clamped.
func ReconcileDepth(requested int, projectMax int) DepthDecision {
	if requested <= 0 {
		return DepthDecision{ProjectMax: projectMax}
	}
	decision := DepthDecision{
		Requested:  requested,
		ProjectMax: projectMax,
		Effective:  requested,
	}
	if requested > projectMax {
		decision.Effective = projectMax
		decision.Clamped = true
	}
	return decision
}
