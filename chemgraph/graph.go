/*
 * graph.go, part of goccd.
 *
 * Copyright 2024 The goccd Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemgraph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	ccd "github.com/pdbe-tools/goccd"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Atom is a component atom that can be used as a gonum graph node.
// Its ID is the atom index in the component.
type Atom struct {
	*ccd.Atom
}

func (A Atom) ID() int64 {
	return int64(A.Index)
}

// Bond is a component bond that can be used as a gonum graph edge.
type Bond struct {
	*ccd.Bond
	At1, At2 Atom
}

func (B Bond) From() graph.Node {
	return B.At1
}

func (B Bond) To() graph.Node {
	return B.At2
}

// bonds are not directional, so the reversed edge is the same bond
// with the ends swapped.
func (B Bond) ReversedEdge() graph.Edge {
	return Bond{Bond: B.Bond, At1: B.At2, At2: B.At1}
}

// FromComponent returns the bond graph of the component. Node IDs are
// atom indexes.
func FromComponent(comp *ccd.Component) *simple.UndirectedGraph {
	comp.FillIndexes()
	g := simple.NewUndirectedGraph()
	for _, a := range comp.Atoms {
		g.AddNode(Atom{a})
	}
	for i, b := range comp.Bonds {
		if b.At1.Index == b.At2.Index {
			panic(fmt.Sprintf("FromComponent: bond %d joins atom %d with itself", i, b.At1.Index))
		}
		g.SetEdge(Bond{Bond: b, At1: Atom{b.At1}, At2: Atom{b.At2}})
	}
	return g
}

// CyclomaticNumber returns the number of independent cycles in g, E-V+C,
// where C is the number of connected components.
func CyclomaticNumber(g graph.Undirected) int {
	v := g.Nodes().Len()
	e := 0
	nodes := g.Nodes()
	for nodes.Next() {
		e += g.From(nodes.Node().ID()).Len()
	}
	e /= 2
	return e - v + len(topo.ConnectedComponents(g))
}

// Rings returns a minimum cycle basis of the bond graph of the component. Each
// ring is given as atom indexes in cyclic order, starting from its smallest index.
// Rings are sorted by size, then by their atoms.
func Rings(comp *ccd.Component) [][]int {
	g := FromComponent(comp)
	nu := CyclomaticNumber(g)
	if nu == 0 {
		return nil
	}
	candidates := hortonCycles(g, comp)
	sort.SliceStable(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) < len(candidates[j])
		}
		return lessInts(candidates[i], candidates[j])
	})
	bondIndex := make(map[[2]int]int, len(comp.Bonds))
	for _, b := range comp.Bonds {
		bondIndex[edgeKey(b.At1.Index, b.At2.Index)] = b.Index
	}
	basis := newGF2Basis(len(comp.Bonds))
	ret := make([][]int, 0, nu)
	for _, c := range candidates {
		if basis.add(cycleVector(c, bondIndex, len(comp.Bonds))) {
			ret = append(ret, c)
			if len(ret) == nu {
				break
			}
		}
	}
	return ret
}

// hortonCycles returns the canonical, deduplicated Horton candidate cycles of g:
// for each atom x and each bond u-v, the cycle formed by the shortest paths x-u
// and x-v plus the bond, whenever both paths only share x.
// A minimum cycle basis is always a subset of these.
func hortonCycles(g *simple.UndirectedGraph, comp *ccd.Component) [][]int {
	seen := make(map[string]bool)
	var ret [][]int
	for _, x := range comp.Atoms {
		if len(x.Bonds) < 2 {
			continue
		}
		sp := path.DijkstraFrom(Atom{x}, g)
		for _, b := range comp.Bonds {
			u, v := b.At1.Index, b.At2.Index
			pu, _ := sp.To(int64(u))
			pv, _ := sp.To(int64(v))
			if len(pu) == 0 || len(pv) == 0 || len(pu)+len(pv) < 4 {
				continue
			}
			cycle := make([]int, 0, len(pu)+len(pv)-1)
			inPath := make(map[int64]bool, len(pu))
			for _, n := range pu {
				cycle = append(cycle, int(n.ID()))
				inPath[n.ID()] = true
			}
			disjoint := true
			for i := len(pv) - 1; i > 0; i-- {
				if inPath[pv[i].ID()] {
					disjoint = false
					break
				}
				cycle = append(cycle, int(pv[i].ID()))
			}
			if !disjoint {
				continue
			}
			cycle = canonicalCycle(cycle)
			k := cycleKey(cycle)
			if seen[k] {
				continue
			}
			seen[k] = true
			ret = append(ret, cycle)
		}
	}
	return ret
}

// canonicalCycle rotates c so it starts at its smallest element, and reverses it
// if needed so the second element is smaller than the last one.
func canonicalCycle(c []int) []int {
	min := 0
	for i, v := range c {
		if v < c[min] {
			min = i
		}
	}
	l := len(c)
	ret := make([]int, l)
	for i := range c {
		ret[i] = c[(min+i)%l]
	}
	if l > 2 && ret[1] > ret[l-1] {
		for i, j := 1, l-1; i < j; i, j = i+1, j-1 {
			ret[i], ret[j] = ret[j], ret[i]
		}
	}
	return ret
}

func cycleKey(c []int) string {
	s := make([]string, len(c))
	for i, v := range c {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, "-")
}

func lessInts(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func edgeKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

// cycleVector returns the incidence vector of the cycle over the bonds of the
// component, packed in 64-bit words.
func cycleVector(c []int, bondIndex map[[2]int]int, nbonds int) []uint64 {
	v := make([]uint64, (nbonds+63)/64)
	for i := range c {
		b, ok := bondIndex[edgeKey(c[i], c[(i+1)%len(c)])]
		if !ok {
			panic("cycleVector: cycle goes through a non-existent bond")
		}
		v[b/64] ^= 1 << uint(b%64)
	}
	return v
}

// gf2Basis keeps a set of linearly independent vectors over GF(2), in row
// echelon form.
type gf2Basis struct {
	rows   [][]uint64
	pivots []int
	bits   int
}

func newGF2Basis(bits int) *gf2Basis {
	return &gf2Basis{bits: bits}
}

func leadingBit(v []uint64) int {
	for w := range v {
		if v[w] == 0 {
			continue
		}
		for b := 0; b < 64; b++ {
			if v[w]&(1<<uint(b)) != 0 {
				return w*64 + b
			}
		}
	}
	return -1
}

// add reduces v against the basis and adds it if the remainder is not zero.
// It returns whether v was independent.
func (G *gf2Basis) add(v []uint64) bool {
	r := append([]uint64(nil), v...)
	for i, row := range G.rows {
		p := G.pivots[i]
		if r[p/64]&(1<<uint(p%64)) == 0 {
			continue
		}
		for w := range r {
			r[w] ^= row[w]
		}
	}
	p := leadingBit(r)
	if p < 0 {
		return false
	}
	//keep the existing rows reduced with respect to the new pivot.
	for i, row := range G.rows {
		if row[p/64]&(1<<uint(p%64)) != 0 {
			for w := range row {
				G.rows[i][w] ^= r[w]
			}
		}
	}
	G.rows = append(G.rows, r)
	G.pivots = append(G.pivots, p)
	return true
}
