/*
 * fragment.go, part of goccd.
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

package mogul

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	ccd "github.com/pdbe-tools/goccd"
)

// Status is the classification of a fragment.
type Status int

const (
	NoHits Status = iota
	Normal
	Outlier
)

func (s Status) String() string {
	switch s {
	case Normal:
		return "normal"
	case Outlier:
		return "outlier"
	}
	return "no hits"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "normal":
		*s = Normal
	case "outlier":
		*s = Outlier
	case "no hits":
		*s = NoHits
	default:
		return fmt.Errorf("unknown fragment status %q", b)
	}
	return nil
}

// Fragment is the engine result for one geometric feature of a component.
// Values the engine didn't report are NaN. Atoms are 0-based indexes in
// the component. Puckering is the Cremer-Pople amplitude of rings, NaN
// for other kinds.
type Fragment struct {
	Kind      ccd.FeatureKind
	Atoms     []int
	Names     []string
	Observed  float64
	Hits      int
	Mean      float64
	SD        float64
	Z         float64
	DMin      float64
	Puckering float64
	Status    Status
}

// Label returns the atom names of the fragment joined by dashes.
func (F *Fragment) Label() string {
	return strings.Join(F.Names, "-")
}

func nullable(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func fromNullable(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

type jsonFragment struct {
	Kind      ccd.FeatureKind `json:"kind"`
	Atoms     []int           `json:"atoms"`
	Names     []string        `json:"names"`
	Observed  *float64        `json:"observed"`
	Hits      int             `json:"hits"`
	Mean      *float64        `json:"mean"`
	SD        *float64        `json:"sd"`
	Z         *float64        `json:"z"`
	DMin      *float64        `json:"dmin"`
	Puckering *float64        `json:"puckering,omitempty"`
	Status    Status          `json:"status"`
}

// MarshalJSON writes missing values as null, since JSON has no NaN.
func (F *Fragment) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonFragment{
		Kind:      F.Kind,
		Atoms:     F.Atoms,
		Names:     F.Names,
		Observed:  nullable(F.Observed),
		Hits:      F.Hits,
		Mean:      nullable(F.Mean),
		SD:        nullable(F.SD),
		Z:         nullable(F.Z),
		DMin:      nullable(F.DMin),
		Puckering: nullable(F.Puckering),
		Status:    F.Status,
	})
}

func (F *Fragment) UnmarshalJSON(b []byte) error {
	var j jsonFragment
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*F = Fragment{
		Kind:      j.Kind,
		Atoms:     j.Atoms,
		Names:     j.Names,
		Observed:  fromNullable(j.Observed),
		Hits:      j.Hits,
		Mean:      fromNullable(j.Mean),
		SD:        fromNullable(j.SD),
		Z:         fromNullable(j.Z),
		DMin:      fromNullable(j.DMin),
		Puckering: fromNullable(j.Puckering),
		Status:    j.Status,
	}
	return nil
}

// Thresholds decide when a fragment is an outlier. Bonds and angles are outliers
// when |z| > Z. Torsions and rings, whose distributions are seldom normal, are
// outliers when the distance to the nearest observed value, d(min), is larger
// than TorsionDMin or RingDMin degrees. Fragments with fewer than MinHits hits
// are not classified.
type Thresholds struct {
	Z           float64 `mapstructure:"z" json:"z" yaml:"z"`
	TorsionDMin float64 `mapstructure:"torsion_dmin" json:"torsion_dmin" yaml:"torsion_dmin"`
	RingDMin    float64 `mapstructure:"ring_dmin" json:"ring_dmin" yaml:"ring_dmin"`
	MinHits     int     `mapstructure:"min_hits" json:"min_hits" yaml:"min_hits"`
}

// DefaultThresholds returns the thresholds used when none are given.
func DefaultThresholds() Thresholds {
	return Thresholds{Z: 2.0, TorsionDMin: 10, RingDMin: 10, MinHits: 1}
}

// Classify returns the status of the fragment under the thresholds.
func (T Thresholds) Classify(F *Fragment) Status {
	minhits := T.MinHits
	if minhits < 1 {
		minhits = 1
	}
	if F.Hits < minhits {
		return NoHits
	}
	switch F.Kind {
	case ccd.BondKind, ccd.AngleKind:
		if !math.IsNaN(F.Z) && math.Abs(F.Z) > T.Z {
			return Outlier
		}
	case ccd.TorsionKind:
		if !math.IsNaN(F.DMin) && F.DMin > T.TorsionDMin {
			return Outlier
		}
	case ccd.RingKind:
		if !math.IsNaN(F.DMin) && F.DMin > T.RingDMin {
			return Outlier
		}
	}
	return Normal
}
