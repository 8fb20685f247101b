package chemgraph

import (
	"reflect"
	"testing"

	ccd "github.com/pdbe-tools/goccd"
)

// skeleton builds a carbon-only component with the given bonds.
func skeleton(natoms int, bonds [][2]int) *ccd.Component {
	comp := &ccd.Component{ID: "TST"}
	for i := 0; i < natoms; i++ {
		comp.Atoms = append(comp.Atoms, &ccd.Atom{Index: i, Name: "C" + string(rune('A'+i)), Symbol: "C"})
	}
	for i, b := range bonds {
		a1, a2 := comp.Atoms[b[0]], comp.Atoms[b[1]]
		bond := &ccd.Bond{Index: i, At1: a1, At2: a2, Order: "SING"}
		a1.Bonds = append(a1.Bonds, bond)
		a2.Bonds = append(a2.Bonds, bond)
		comp.Bonds = append(comp.Bonds, bond)
	}
	return comp
}

func TestBenzeneRing(Te *testing.T) {
	comp, err := ccd.ComponentFileRead("../test/BNZ.cif")
	if err != nil {
		Te.Fatal(err)
	}
	g := FromComponent(comp)
	if n := g.Nodes().Len(); n != 12 {
		Te.Errorf("expected 12 nodes, got %d", n)
	}
	if nu := CyclomaticNumber(g); nu != 1 {
		Te.Errorf("expected cyclomatic number 1, got %d", nu)
	}
	rings := Rings(comp)
	want := [][]int{{0, 1, 2, 3, 4, 5}}
	if !reflect.DeepEqual(rings, want) {
		Te.Errorf("expected %v, got %v", want, rings)
	}
}

func TestAcyclic(Te *testing.T) {
	comp, err := ccd.ComponentFileRead("../test/EOH.cif")
	if err != nil {
		Te.Fatal(err)
	}
	if r := Rings(comp); len(r) != 0 {
		Te.Errorf("ethanol has no rings, got %v", r)
	}
}

func TestFusedRings(Te *testing.T) {
	//naphthalene skeleton, atoms 0 and 5 are the fusion atoms.
	naph := skeleton(10, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 0}, {5, 6}, {6, 7}, {7, 8}, {8, 9}, {9, 0}})
	rings := Rings(naph)
	want := [][]int{{0, 1, 2, 3, 4, 5}, {0, 5, 6, 7, 8, 9}}
	if !reflect.DeepEqual(rings, want) {
		Te.Errorf("expected %v, got %v", want, rings)
	}
}

func TestSmallRingsAndComponents(Te *testing.T) {
	//a cyclopropane and, disconnected from it, a cyclobutane.
	comp := skeleton(7, [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 6}, {6, 3}})
	g := FromComponent(comp)
	if nu := CyclomaticNumber(g); nu != 2 {
		Te.Errorf("expected cyclomatic number 2, got %d", nu)
	}
	rings := Rings(comp)
	want := [][]int{{0, 1, 2}, {3, 4, 5, 6}}
	if !reflect.DeepEqual(rings, want) {
		Te.Errorf("expected %v, got %v", want, rings)
	}
}

func TestBicycle(Te *testing.T) {
	//bicyclo[1.1.1]pentane: 5 atoms, 6 bonds, 2 independent 4-membered rings.
	comp := skeleton(5, [][2]int{{0, 1}, {1, 4}, {0, 2}, {2, 4}, {0, 3}, {3, 4}})
	rings := Rings(comp)
	if len(rings) != 2 {
		Te.Fatalf("expected 2 rings, got %v", rings)
	}
	for _, r := range rings {
		if len(r) != 4 {
			Te.Errorf("expected 4-membered rings, got %v", r)
		}
	}
}

func TestCanonicalCycle(Te *testing.T) {
	c := canonicalCycle([]int{4, 2, 7, 1, 9})
	want := []int{1, 7, 2, 4, 9}
	if !reflect.DeepEqual(c, want) {
		Te.Errorf("expected %v, got %v", want, c)
	}
}
