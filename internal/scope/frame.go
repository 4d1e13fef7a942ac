package scope

import "github.com/cwbudde/mmverify/internal/mm"

// frame is scope bookkeeping active while parsing a ${ ... $} block (or,
// for index 0, the implicit top-level scope). It is pushed on ${, popped on
// $}, and is never retained once parsing finishes: the Rule objects built
// while a frame is open capture everything downstream code needs from it.
type frame struct {
	variables      map[string]bool
	disjointGroups [][]string
	floatings      []*mm.Statement
	essentials     []*mm.Statement
}

func newFrame() *frame {
	return &frame{variables: make(map[string]bool)}
}
