// Package dbg turns opaque identities (quad-edge indices, pointers) into
// readable names for debug output and logs.
package dbg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/logrusorgru/aurora"
)

// Names are generated lazily and memoized forever, which leaks, but only for
// keys somebody actually asked about.

var memo map[interface{}]string

func init() {
	memo = make(map[interface{}]string)
	// Since the ids are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

// Name returns a memoized readable name for key. Keys must be comparable.
func Name(key interface{}) string {
	if key == nil {
		return "Ø"
	}

	if r, ok := memo[key]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[key] = r
	return r
}

// EdgeKind selects the color of an edge name.
type EdgeKind int

const (
	EdgePlain EdgeKind = iota
	EdgeConstrained
	EdgeBoundary
)

// EdgeName names a quad-edge and colors it by kind: boundary edges cyan,
// constrained edges red, the rest green.
func EdgeName(quad int, rotation int, kind EdgeKind) string {
	name := fmt.Sprintf("%s/%d", Name(quad), rotation)
	switch kind {
	case EdgeBoundary:
		return aurora.Cyan(name).String()
	case EdgeConstrained:
		return aurora.Red(name).String()
	}
	return aurora.Green(name).String()
}
