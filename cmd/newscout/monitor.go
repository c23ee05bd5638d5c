package main

import (
	"fmt"
	"io"

	"github.com/poiesic/newscout/core"
	"github.com/poiesic/newscout/search"
)

// printingMonitor writes pipeline stage summaries for --verbose runs.
type printingMonitor struct {
	out io.Writer
}

var _ search.PipelineMonitor = (*printingMonitor)(nil)

func newPrintingMonitor(out io.Writer) *printingMonitor {
	return &printingMonitor{out: out}
}

func (m *printingMonitor) Start(query, sessionID string) {
	fmt.Fprintf(m.out, "session %s: searching for %q\n", sessionID, query)
}

func (m *printingMonitor) AfterRewrite(generated string) {
	fmt.Fprintf(m.out, "rewritten query: %q\n", generated)
}

func (m *printingMonitor) AfterRetrieval(items []core.NewsItem) {
	fmt.Fprintf(m.out, "retrieved %d items\n", len(items))
	for i, item := range items {
		fmt.Fprintf(m.out, "  %d: %s (%s)\n", i+1, item.Title, item.Source)
	}
}

func (m *printingMonitor) AfterAnalysis(analysis core.Analysis) {
	fmt.Fprintf(m.out, "analysis kept %d items (relevant=%t)\n", len(analysis.Relevant), analysis.HasRelevant)
	for _, item := range analysis.Relevant {
		fmt.Fprintf(m.out, "  [%d] %s: %s\n", item.Score, item.Title, item.Reason)
	}
}

func (m *printingMonitor) Finish(_ *core.SearchResponse) {
	fmt.Fprintln(m.out, "done")
}

// monitorOrNil avoids handing the searcher a non-nil interface wrapping a
// nil pointer.
func monitorOrNil(m *printingMonitor) search.PipelineMonitor {
	if m == nil {
		return nil
	}
	return m
}
