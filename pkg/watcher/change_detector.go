package watcher

import "slices"

// ChangeAnalysis describes what changed and what needs to be redone
type ChangeAnalysis struct {
	NeedReloadConfig bool // method parameters changed, configuration must be loaded again
	NeedRerun        bool
	ChangedFiles     []string
}

// AnalyzeChanges determines what needs to be redone based on what changed
func AnalyzeChanges(event ChangeEvent) *ChangeAnalysis {
	analysis := &ChangeAnalysis{
		ChangedFiles: slices.Clone(event.Paths),
	}

	switch event.Type {
	case ChangeTypeParameters:
		// Method or threshold may have changed
		analysis.NeedReloadConfig = true
		analysis.NeedRerun = true

	case ChangeTypeData:
		// Alternatives or relations changed, the configuration stays valid
		analysis.NeedRerun = true
	}

	return analysis
}

// Merge combines the analyses of several events delivered together
func (a *ChangeAnalysis) Merge(other *ChangeAnalysis) {
	a.NeedReloadConfig = a.NeedReloadConfig || other.NeedReloadConfig
	a.NeedRerun = a.NeedRerun || other.NeedRerun
	a.ChangedFiles = append(a.ChangedFiles, other.ChangedFiles...)
}
