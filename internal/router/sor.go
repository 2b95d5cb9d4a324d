// Package router implements the Smart Order Router: an amount-propagating
// best-first search over a graph.Graph that returns the single best path
// from a source token to a destination token for a given input amount.
package router

import (
	"container/heap"
	"errors"
	"math/big"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/graph"
)

var (
	ErrNoPathFound            = errors.New("router: no path found")
	ErrSrcTokenDestTokenEqual = errors.New("router: source and destination token are the same")
	ErrVertexNotInGraph       = errors.New("router: vertex not in graph")
)

// SORConfig tunes the router. SlippageBps is carried in the config only:
// neither the router nor the planner reads it, and every compiled
// EthDexSwap step gets min_amount_out 0 (trust the quote).
// MinAmountOut is spec.md §4.3's min_amount_out floor: ComputeGraphSolution
// fails ErrNoPathFound if the best path's quoted_out falls below it.
type SORConfig struct {
	MaxPathLength int
	SlippageBps   uint32
	MinAmountOut  *big.Int
}

// DefaultSORConfig matches spec.md §4.3's suggested path-length cap and its
// min_amount_out default of zero (no floor).
func DefaultSORConfig() SORConfig {
	return SORConfig{MaxPathLength: 6, SlippageBps: 0, MinAmountOut: big.NewInt(0)}
}

// GraphSolution is the SOR's output: the full path plus the realized input
// and quoted output amounts.
type GraphSolution struct {
	SrcAddr    pcommon.UniversalAddress
	DestAddr   pcommon.UniversalAddress
	SrcToken   pcommon.UniversalTokenId
	DestToken  pcommon.UniversalTokenId
	AmountIn   *big.Int
	Path       []graph.Edge
	QuotedOut  *big.Int
}

// searchState is one entry in the priority queue: the best known realized
// amount reachable at a vertex, along with the path taken to get there.
type searchState struct {
	vertex pcommon.UniversalTokenId
	amount *big.Int
	path   []graph.Edge
}

// searchHeap is a max-heap on amount (ties broken by fewer edges), the
// priority queue for the best-first search. container/heap is the idiomatic
// Go priority-queue primitive (see DESIGN.md); go-ethereum itself uses it
// for its transaction pool.
type searchHeap []*searchState

func (h searchHeap) Len() int { return len(h) }
func (h searchHeap) Less(i, j int) bool {
	cmp := h[i].amount.Cmp(h[j].amount)
	if cmp != 0 {
		return cmp > 0 // max-heap on amount
	}
	return len(h[i].path) < len(h[j].path) // tie-break: fewer edges
}
func (h searchHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *searchHeap) Push(x any)   { *h = append(*h, x.(*searchState)) }
func (h *searchHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ComputeGraphSolution finds the best single path from srcToken to
// destToken carrying amountIn, per spec.md §4.3: an amount-propagating
// best-first search. At each vertex v we maintain the best known realized
// amount A(v); relaxing edge (u,v) computes out = quote(edge, A(u)) minus
// the edge's estimated fee in destination-token units (Edge.QuoteNet); if
// out > A(v), v is updated and requeued. Cycles are excluded by forbidding
// a token from appearing twice on a candidate path; path length is capped
// at cfg.MaxPathLength, and the result is rejected with ErrNoPathFound if
// its quoted_out falls below cfg.MinAmountOut.
func ComputeGraphSolution(
	g *graph.Graph,
	srcAddr, destAddr pcommon.UniversalAddress,
	srcToken, destToken pcommon.UniversalTokenId,
	amountIn *big.Int,
	cfg SORConfig,
) (GraphSolution, error) {
	if srcToken == destToken {
		return GraphSolution{}, ErrSrcTokenDestTokenEqual
	}
	if !g.HasVertex(srcToken) {
		return GraphSolution{}, errVertex(srcToken)
	}
	if !g.HasVertex(destToken) {
		return GraphSolution{}, errVertex(destToken)
	}

	best := map[pcommon.UniversalTokenId]*big.Int{srcToken: new(big.Int).Set(amountIn)}
	bestPathLen := map[pcommon.UniversalTokenId]int{srcToken: 0}

	pq := &searchHeap{{vertex: srcToken, amount: new(big.Int).Set(amountIn), path: nil}}
	heap.Init(pq)

	var solution *GraphSolution

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*searchState)

		// Stale entry: a better (or equal, fewer-edges) state for this
		// vertex was already popped.
		if b, ok := best[cur.vertex]; ok {
			if cur.amount.Cmp(b) < 0 {
				continue
			}
			if cur.amount.Cmp(b) == 0 && len(cur.path) > bestPathLen[cur.vertex] {
				continue
			}
		}

		if cur.vertex == destToken {
			if solution == nil || cur.amount.Cmp(solution.QuotedOut) > 0 {
				solution = &GraphSolution{
					SrcAddr:   srcAddr,
					DestAddr:  destAddr,
					SrcToken:  srcToken,
					DestToken: destToken,
					AmountIn:  new(big.Int).Set(amountIn),
					Path:      cur.path,
					QuotedOut: cur.amount,
				}
			}
			continue
		}

		if len(cur.path) >= cfg.MaxPathLength {
			continue
		}

		visited := pathVertices(cur.path, srcToken)

		for _, edge := range g.EdgesFrom(cur.vertex) {
			if _, seen := visited[edge.Dest]; seen {
				continue // cycle exclusion: no repeated vertex on a path
			}
			out := edge.QuoteNet(cur.amount, g)
			if out.Sign() <= 0 {
				continue
			}

			existing, hasExisting := best[edge.Dest]
			newPath := append(append([]graph.Edge{}, cur.path...), edge)

			if !hasExisting || out.Cmp(existing) > 0 ||
				(out.Cmp(existing) == 0 && len(newPath) < bestPathLen[edge.Dest]) {
				best[edge.Dest] = out
				bestPathLen[edge.Dest] = len(newPath)
				heap.Push(pq, &searchState{vertex: edge.Dest, amount: out, path: newPath})
			}
		}
	}

	if solution == nil {
		return GraphSolution{}, ErrNoPathFound
	}
	if cfg.MinAmountOut != nil && solution.QuotedOut.Cmp(cfg.MinAmountOut) < 0 {
		return GraphSolution{}, ErrNoPathFound
	}
	return *solution, nil
}

// pathVertices returns the set of vertices already visited along path,
// including the search's source vertex.
func pathVertices(path []graph.Edge, src pcommon.UniversalTokenId) map[pcommon.UniversalTokenId]struct{} {
	visited := map[pcommon.UniversalTokenId]struct{}{src: {}}
	for _, e := range path {
		visited[e.Src] = struct{}{}
		visited[e.Dest] = struct{}{}
	}
	return visited
}

func errVertex(token pcommon.UniversalTokenId) error {
	return &vertexNotInGraphError{token: token}
}

type vertexNotInGraphError struct {
	token pcommon.UniversalTokenId
}

func (e *vertexNotInGraphError) Error() string {
	return "router: vertex not in graph: " + e.token.String()
}

func (e *vertexNotInGraphError) Unwrap() error {
	return ErrVertexNotInGraph
}
