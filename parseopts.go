package arith

import "strconv"

// DefaultMaxDepth is the nesting limit for parsing when no MaxDepth option is
// given.
const DefaultMaxDepth = 1000

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds general data for parsing.
type parsectx struct {
	// depth is the number of subexpressions currently being parsed.
	depth int
	// maxdepth is the limit on depth.
	maxdepth int
}

type depthopt int

// MaxDepth limits how deeply subexpressions may nest, counting parentheses,
// unary minus, and chains of ^. Deeper input fails with ErrNestingDepth.
// Panics if n is not positive.
func MaxDepth(n int) ParseOption {
	if n <= 0 {
		panic("arith: invalid max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}
