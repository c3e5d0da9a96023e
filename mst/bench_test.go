package mst_test

import (
	"testing"

	"github.com/katalvlaran/idpnet/mst"
)

func BenchmarkKruskal(b *testing.B) {
	g := connected(500, 2000, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = mst.Kruskal(g)
	}
}

func BenchmarkPrim(b *testing.B) {
	g := connected(500, 2000, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = mst.Prim(g, 0)
	}
}
