package reconcile

import (
	"fmt"
	"testing"

	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/node"
)

func benchList(n, rev int) []*node.Node {
	items := make([]*node.Node, n)
	for i := range items {
		var ev node.Events
		ev.On("click", func(dom.Event) {})
		items[i] = node.NewElement("li", node.Attributes{}, ev,
			text(fmt.Sprintf("item %d rev %d", i, rev%2)))
	}
	return []*node.Node{el("ul", map[string]string{"class": "list"}, items...)}
}

func BenchmarkRender(b *testing.B) {
	b.Run("unchanged", func(b *testing.B) {
		f := newFixture()
		f.render(benchList(100, 0)...)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			f.render(benchList(100, 0)...)
		}
	})

	b.Run("text changes", func(b *testing.B) {
		f := newFixture()
		f.render(benchList(100, 0)...)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			f.render(benchList(100, i+1)...)
			f.doc.ResetMutations()
		}
	})

	b.Run("grow and shrink", func(b *testing.B) {
		f := newFixture()
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			f.render(benchList(10+i%90, 0)...)
			f.doc.ResetMutations()
		}
	})
}
