package ui

import (
	"context"
	"strings"

	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/picker"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/zeromicro/go-zero/core/logx"
)

// listSink streams the font list into #font-list over one SSE response.
type listSink struct {
	sse   *datastar.ServerSentEventGenerator
	links *font.LinkSet
}

func newListSink(sse *datastar.ServerSentEventGenerator, links *font.LinkSet) *listSink {
	return &listSink{sse: sse, links: links}
}

func (s *listSink) Reset(ctx context.Context) error {
	return s.sse.PatchElements(render(fontList()))
}

func (s *listSink) Preload(family string, weights []int) {
	link, added := s.links.Add(family, weights)
	if !added {
		return
	}
	if err := s.sse.PatchElements(render(linkNode(link)),
		datastar.WithSelectorID("font-links"), datastar.WithModeAppend()); err != nil {
		logx.Errorf("datastar preload %s: %v", family, err)
	}
}

func (s *listSink) Append(ctx context.Context, batch []picker.Entry) error {
	var b strings.Builder
	for _, e := range batch {
		if err := fontEntry(e).Render(&b); err != nil {
			return err
		}
	}
	return s.sse.PatchElements(b.String(),
		datastar.WithSelectorID("font-list"), datastar.WithModeAppend())
}
