package template

import (
	"math"
	"sort"
	"strings"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/diag"
	"github.com/MyroslavaStopets/swig/internal/symtab"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
)

// ExactPriority is the sentinel priority assigned to an exact parameter
// match — larger than any real type-string length (§4.D).
const ExactPriority = math.MaxInt32

// doesParmMatch scores a single parameter of a candidate partial
// specialization against a concrete instantiation argument (§4.D).
// Returns (priority, matched).
func doesParmMatch(concrete swigtype.T, candidate swigtype.T, index int, scope *symtab.Scope) (int, bool) {
	placeholder := placeholderToken(index)

	r := symtab.TypedefReduceFull(concrete, scope)
	b := r.Base()

	substituted, count := replacePlaceholder(string(candidate), placeholder, string(b))

	switch count {
	case 0:
		// Exact attempt: match iff R == P'.
		if string(r) == substituted {
			return ExactPriority, true
		}
		return 0, false
	case 1:
		// Deduced attempt: P'' = P with $i replaced by empty.
		stripped, _ := replacePlaceholder(string(candidate), placeholder, "")
		if strings.HasPrefix(string(r), stripped) {
			return len(stripped), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func placeholderToken(index int) string {
	return "$" + itoa(index)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// replacePlaceholder replaces every occurrence of token in s with repl and
// returns the result plus the number of substitutions made.
func replacePlaceholder(s, token, repl string) (string, int) {
	count := strings.Count(s, token)
	if count == 0 {
		return s, 0
	}
	return strings.ReplaceAll(s, token, repl), count
}

// Candidate is one partial specialization under consideration, paired with
// its parameter-pattern list.
type Candidate struct {
	Node  *ast.Node
	Parms []swigtype.T // candidate partial's per-parameter patterns, $i-indexed from 1
}

// MatchPartials implements §4.D: scores every candidate against the
// concrete argument list, builds the priority matrix, and returns the
// unambiguous winner — or the first candidate by discovery order when
// several tie (whether because multiple candidates are column-best on
// every parameter, or because no candidate is: a cross-column split like
// S4's X<T1,double*> vs X<int*,T2> leaves zero all-column-max rows, and is
// ambiguous all the same) — with every other survivor reported via
// diags.AmbiguousPartial (§8 property 5, §9's "discovery order" tie-break).
//
// Scoring and the deterministic tie-break are grounded on
// internal/core.FuzzyResolver.Resolve's "score every candidate, then sort
// by score descending with a stable secondary key" shape.
func MatchPartials(candidates []Candidate, args []swigtype.T, scope *symtab.Scope, loc diag.Location, diags *diag.Diagnostics) *ast.Node {
	type scored struct {
		idx      int
		node     *ast.Node
		row      []int // per-column priority
		survived bool
	}

	var surviving []scored
	for i, c := range candidates {
		if len(c.Parms) != len(args) {
			continue
		}
		row := make([]int, len(args))
		ok := true
		for col, arg := range args {
			// Placeholders are 1-based ($1, $2, ...) per §4.D.
			p, matched := doesParmMatch(arg, c.Parms[col], col+1, scope)
			if !matched {
				ok = false
				break
			}
			row[col] = p
		}
		if !ok {
			continue
		}
		surviving = append(surviving, scored{idx: i, node: c.Node, row: row, survived: true})
	}

	if len(surviving) == 0 {
		return nil
	}

	cols := len(args)
	colMax := make([]int, cols)
	for _, s := range surviving {
		for c := 0; c < cols; c++ {
			if s.row[c] > colMax[c] {
				colMax[c] = s.row[c]
			}
		}
	}

	var winners []scored
	for _, s := range surviving {
		wins := true
		for c := 0; c < cols; c++ {
			if s.row[c] != colMax[c] {
				wins = false
				break
			}
		}
		if wins {
			winners = append(winners, s)
		}
	}

	if len(winners) == 0 {
		// No candidate is column-best on every parameter (a cross-column
		// split, e.g. S4: X<T1,double*> vs X<int*,T2> against X<int*,double*>
		// — each wins exactly one column and loses the other). §4.D.4 calls
		// this "fall through... use the full candidate set's first", but
		// S4 names the same shape an AmbiguousPartial warning with the
		// first-declared candidate chosen — so this is that case, not a
		// silent default. Apply the same discovery-order tie-break used for
		// the multiple-winners branch and warn over every other survivor.
		sort.SliceStable(surviving, func(i, j int) bool { return surviving[i].idx < surviving[j].idx })
		chosen := surviving[0]
		if diags != nil && len(surviving) > 1 {
			var ignored []string
			for _, s := range surviving[1:] {
				ignored = append(ignored, nodeLabel(s.node, s.idx))
			}
			diags.AmbiguousPartial(loc, nodeLabel(chosen.node, chosen.idx), ignored)
		}
		return chosen.node
	}

	// Deterministic order = discovery order (stable sort on original index,
	// already true since surviving/winners preserve append order, but sort
	// explicitly to make the invariant self-documenting).
	sort.SliceStable(winners, func(i, j int) bool { return winners[i].idx < winners[j].idx })

	chosen := winners[0]
	if len(winners) > 1 && diags != nil {
		var ignored []string
		for _, w := range winners[1:] {
			ignored = append(ignored, nodeLabel(w.node, w.idx))
		}
		diags.AmbiguousPartial(loc, nodeLabel(chosen.node, chosen.idx), ignored)
	}
	return chosen.node
}

func nodeLabel(n *ast.Node, idx int) string {
	if name := n.Attr(ast.AttrName); name != "" {
		return name
	}
	return "partial#" + itoa(idx)
}
