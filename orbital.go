/*
 * orbital.go, part of gomo.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

package mo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Shell is one basis-function shell on one atom.
type Shell struct {
	Atom  int //1-based
	Type  ShellType
	First int //index of the first primitive in MOData.Gaussians
	Count int //declared number of primitives
	Valid bool
}

//Gaussian is one primitive of a contracted Gaussian shell.
type Gaussian struct {
	Exponent float64
	Coef     float64
	CoefSP   float64 //the p coefficient of SP shells
}

//ShellHandle identifies a shell declared in the current model.
type ShellHandle int

//Spin tags an orbital as alpha, beta or neither.
type Spin int

const (
	NoSpin Spin = iota
	Alpha
	Beta
)

func (s Spin) String() string {
	switch s {
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	}
	return ""
}

//SpinOf returns the spin for "alpha"/"beta" (any case), NoSpin for anything else.
func SpinOf(s string) Spin {
	switch cleanTag(s) {
	case "ALPHA", "A":
		return Alpha
	case "BETA", "B":
		return Beta
	}
	return NoSpin
}

//Orbital is one molecular orbital, with its coefficients in the canonical order.
//Energy and Occupancy are NaN when the program didn't report them.
type Orbital struct {
	Coefficients []float64
	Energy       float64
	Occupancy    float64
	Symmetry     string
	Spin         Spin
	Index        int //encounter order in the model
}

//HasEnergy returns true if the orbital has an energy.
func (O *Orbital) HasEnergy() bool { return !math.IsNaN(O.Energy) }

//HasOccupancy returns true if the orbital has an occupancy.
func (O *Orbital) HasOccupancy() bool { return !math.IsNaN(O.Occupancy) }

//Occupied returns true if the orbital has a positive occupancy.
func (O *Orbital) Occupied() bool { return O.HasOccupancy() && O.Occupancy > 0 }

func (O *Orbital) String() string {
	return fmt.Sprintf("MO %d %s %s E=%g occ=%g (%d coefficients)", O.Index+1, O.Symmetry, O.Spin, O.Energy, O.Occupancy, len(O.Coefficients))
}

func (O *Orbital) copy() *Orbital {
	ret := *O
	ret.Coefficients = make([]float64, len(O.Coefficients))
	copy(ret.Coefficients, O.Coefficients)
	return &ret
}

//PendingOrbital collects the vendor-order coefficients of an orbital that
//is still being read. Several can be filled at once, as programs usually print
//a few orbitals side by side.
type PendingOrbital struct {
	raw  []float64
	done bool
}

//Set puts v in the vendor-order position pos.
func (p *PendingOrbital) Set(pos int, v float64) {
	if pos < 0 {
		return
	}
	for len(p.raw) <= pos {
		p.raw = append(p.raw, 0)
	}
	p.raw[pos] = v
}

//Append adds v after the last position set.
func (p *PendingOrbital) Append(v float64) {
	p.raw = append(p.raw, v)
}

//Len returns the number of vendor positions seen so far.
func (p *PendingOrbital) Len() int { return len(p.raw) }

//MOData is the complete orbital set for one model. Shells with Gaussians and
//Slaters are mutually exclusive.
type MOData struct {
	CalculationType   string
	EnergyUnits       string
	Shells            []Shell
	Gaussians         []Gaussian
	Slaters           []SlaterFunction
	Orbitals          []*Orbital
	OrbitalsAvailable bool
	Normalized        bool        //the Slater coefficients have been scaled
	HighL             []ShellType //G, H and I types enabled by the scanner
	Problems          []string    //what went wrong, for the user
}

//BasisCount returns the number of basis functions (coefficients per orbital)
//of the model.
func (M *MOData) BasisCount() int {
	if len(M.Shells) == 0 {
		n := 0
		for _, s := range M.Slaters {
			if !s.Contracted {
				n++
			}
		}
		return n
	}
	return basisCount(M.Shells)
}

func basisCount(shells []Shell) int {
	n := 0
	for _, s := range shells {
		n += s.Type.Len()
	}
	return n
}

//HighLEnabled returns true if the high angular momentum type t was enabled
//by the scanner. Lower types are always enabled.
func (M *MOData) HighLEnabled(t ShellType) bool {
	if !t.HighL() {
		return true
	}
	for _, v := range M.HighL {
		if v == t {
			return true
		}
	}
	return false
}

//Coefficients returns the coefficients of all the orbitals, one orbital per row.
//Orbitals shorter than the longest one are padded with zeros.
func (M *MOData) Coefficients() *mat.Dense {
	if len(M.Orbitals) == 0 {
		return nil
	}
	cols := 0
	for _, o := range M.Orbitals {
		if len(o.Coefficients) > cols {
			cols = len(o.Coefficients)
		}
	}
	if cols == 0 {
		return nil
	}
	C := mat.NewDense(len(M.Orbitals), cols, nil)
	for i, o := range M.Orbitals {
		C.SetRow(i, padded(o.Coefficients, cols))
	}
	return C
}

func padded(v []float64, n int) []float64 {
	if len(v) == n {
		return v
	}
	ret := make([]float64, n)
	copy(ret, v)
	return ret
}

//Copy returns a deep copy of the data.
func (M *MOData) Copy() *MOData {
	ret := *M
	ret.Shells = append([]Shell(nil), M.Shells...)
	ret.Gaussians = append([]Gaussian(nil), M.Gaussians...)
	ret.Slaters = append([]SlaterFunction(nil), M.Slaters...)
	ret.HighL = append([]ShellType(nil), M.HighL...)
	ret.Problems = append([]string(nil), M.Problems...)
	ret.Orbitals = make([]*Orbital, len(M.Orbitals))
	for i, o := range M.Orbitals {
		ret.Orbitals[i] = o.copy()
	}
	return &ret
}
