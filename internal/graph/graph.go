package graph

import (
	pcommon "github.com/privadex/aggregator/internal/common"
)

// TokenPricing is a vertex's derived USD/ETH price, sourced from the pool
// data that created it (phase 1) or propagated across a bridge (phase 2).
type TokenPricing struct {
	DerivedUSD *pcommon.FixedPoint // nil if never priced
	DerivedETH *pcommon.FixedPoint
}

// Graph is the directed multigraph the SOR searches: vertices keyed by
// UniversalTokenId, edges stored as an adjacency list keyed by src. Styled
// after the teacher's DEX.Pools map[string]*LiquidityPool ownership (one
// mutable struct holding everything, built once and then read-only).
type Graph struct {
	vertices map[pcommon.UniversalTokenId]struct{}
	adj      map[pcommon.UniversalTokenId][]Edge
	pricing  map[pcommon.UniversalTokenId]TokenPricing
}

// NewGraph returns an empty graph ready for the 3-phase builder.
func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[pcommon.UniversalTokenId]struct{}),
		adj:      make(map[pcommon.UniversalTokenId][]Edge),
		pricing:  make(map[pcommon.UniversalTokenId]TokenPricing),
	}
}

// AddVertex registers token as a vertex if it isn't already present.
func (g *Graph) AddVertex(token pcommon.UniversalTokenId) {
	g.vertices[token] = struct{}{}
}

// HasVertex reports whether token is a vertex of this graph.
func (g *Graph) HasVertex(token pcommon.UniversalTokenId) bool {
	_, ok := g.vertices[token]
	return ok
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	return len(g.vertices)
}

// EdgeCount returns the total number of edges across all adjacency lists.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, edges := range g.adj {
		count += len(edges)
	}
	return count
}

// AddEdge adds e to the graph, registering its Src/Dest as vertices if
// they're new.
func (g *Graph) AddEdge(e Edge) {
	g.AddVertex(e.Src)
	g.AddVertex(e.Dest)
	g.adj[e.Src] = append(g.adj[e.Src], e)
}

// EdgesFrom returns every outgoing edge from token, in insertion order.
func (g *Graph) EdgesFrom(token pcommon.UniversalTokenId) []Edge {
	return g.adj[token]
}

// SetPricing records/overwrites token's derived USD/ETH price.
func (g *Graph) SetPricing(token pcommon.UniversalTokenId, pricing TokenPricing) {
	g.pricing[token] = pricing
}

// Pricing returns token's derived price and whether it has ever been priced.
func (g *Graph) Pricing(token pcommon.UniversalTokenId) (TokenPricing, bool) {
	p, ok := g.pricing[token]
	return p, ok
}
