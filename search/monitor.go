package search

import "github.com/poiesic/newscout/core"

// PipelineMonitor provides hooks to observe the search pipeline.
// Implement this interface to track intermediate steps during a search turn.
type PipelineMonitor interface {
	Start(query, sessionID string)
	AfterRewrite(generated string)
	AfterRetrieval(items []core.NewsItem)
	AfterAnalysis(analysis core.Analysis)
	Finish(response *core.SearchResponse)
}

// noopMonitor is a no-op implementation of PipelineMonitor
type noopMonitor struct{}

var _ PipelineMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)                {}
func (n *noopMonitor) AfterRewrite(_ string)            {}
func (n *noopMonitor) AfterRetrieval(_ []core.NewsItem) {}
func (n *noopMonitor) AfterAnalysis(_ core.Analysis)    {}
func (n *noopMonitor) Finish(_ *core.SearchResponse)    {}
