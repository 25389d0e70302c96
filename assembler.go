/*
 * assembler.go, part of gomo.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package mo

import (
	"fmt"
	"log"
	"math"
	"strings"
)

//Options controls an Assembler. The zero value gives the default behavior,
//except for the Logger, which NewAssembler sets if nil.
type Options struct {
	Logger            *log.Logger //where problems are reported.
	Verbose           bool        //also log every permutation map built
	CalculationType   string
	EnergyUnits       string
	SkipSlaterScaling bool //the program already prints normalized Slater coefficients
	SortSlaters       bool //group the Slater functions (and MO coefficients) by atom
	SortByEnergy      bool
	AllowNoOrbitals   bool //MOData() doesn't fail when there are no usable orbitals
}

//SetDefaults sets the default options.
func (O *Options) SetDefaults() {
	O.Logger = log.New(log.Writer(), "gomo: ", log.Flags())
	O.SkipSlaterScaling = false
	O.SortSlaters = false
	O.SortByEnergy = false
	O.AllowNoOrbitals = false
}

//Assembler collects the basis set and the orbitals of one model, as a vendor
//scanner reports them, and produces the canonical MOData. An Assembler
//is not safe for concurrent use.
type Assembler struct {
	opts     Options
	maps     *MapCache
	shells   []Shell
	prims    [][]Gaussian //primitives of each shell
	slaters  []SlaterFunction
	orbitals []*Orbital
	highL    []ShellType
	problems []string
	dropped  int //shells dropped for an unknown tag or a bad primitive count
	discard  int //orbitals not built because a map failed
	normal   bool
}

//NewAssembler returns an assembler ready for a first model.
//If opts is nil, the defaults are used.
func NewAssembler(opts *Options) *Assembler {
	A := new(Assembler)
	if opts == nil {
		A.opts.SetDefaults()
	} else {
		A.opts = *opts
		if A.opts.Logger == nil {
			A.opts.Logger = log.New(log.Writer(), "gomo: ", log.Flags())
		}
	}
	A.maps = NewMapCache()
	A.NewModel()
	return A
}

//NewModel drops everything collected so far, including the permutation maps
//and their failures. It must be called before reading each new model.
func (A *Assembler) NewModel() {
	A.maps.Reset()
	A.shells = nil
	A.prims = nil
	A.slaters = nil
	A.orbitals = nil
	A.highL = nil
	A.problems = nil
	A.dropped = 0
	A.discard = 0
	A.normal = false
}

//problem logs a problem with the current model and keeps it for MOData.Problems.
//A problem already reported for the model is not repeated.
func (A *Assembler) problem(format string, v ...interface{}) {
	s := fmt.Sprintf(format, v...)
	for _, p := range A.problems {
		if p == s {
			return
		}
	}
	A.problems = append(A.problems, s)
	A.opts.Logger.Print(s)
}

//DeclareShell places a new shell of type tag and nPrimitives primitives on the
//(1-based) atom. A shell with an unknown tag is dropped, logged, and an
//UnknownShellType error is returned. A shell with a negative number of primitives
//is dropped in the same way, with a PrimitiveCountMismatch error. The orbitals of
//a model with dropped shells can't be used.
func (A *Assembler) DeclareShell(atom int, tag string, nPrimitives int) (ShellHandle, error) {
	t, ok := ShellTypeOf(tag)
	if !ok {
		A.dropped++
		A.problem("shell on atom %d dropped: unrecognized shell type %q", atom, tag)
		return -1, newError(UnknownShellType, fmt.Sprintf("%q", tag), false, "DeclareShell")
	}
	if nPrimitives < 0 {
		A.dropped++
		A.problem("%s shell on atom %d dropped: %d primitives declared", t, atom, nPrimitives)
		return -1, newError(PrimitiveCountMismatch, fmt.Sprintf("%d primitives", nPrimitives), false, "DeclareShell")
	}
	A.shells = append(A.shells, Shell{Atom: atom, Type: t, Count: nPrimitives, Valid: true})
	A.prims = append(A.prims, make([]Gaussian, 0, nPrimitives))
	return ShellHandle(len(A.shells) - 1), nil
}

//AddGaussian appends a primitive to the shell h. coefSP, if given, is the p coefficient
//of an SP shell.
func (A *Assembler) AddGaussian(h ShellHandle, exponent, coef float64, coefSP ...float64) error {
	if h < 0 || int(h) >= len(A.shells) {
		return newError(BadHandle, fmt.Sprintf("%d", h), false, "AddGaussian")
	}
	g := Gaussian{Exponent: exponent, Coef: coef}
	if len(coefSP) > 0 {
		g.CoefSP = coefSP[0]
	}
	A.prims[h] = append(A.prims[h], g)
	return nil
}

//AddSlater stores a Slater function, x^ex y^ey z^ez r^er exp(-|zeta| r), on the (1-based) atom.
//A negative zeta marks the function as contracted with the previous one. The optional
//element is the atomic number, needed for the semi-empirical quantum numbers.
//It returns the index of the new function, or -1 if the coefficients of the model have
//already been normalized.
func (A *Assembler) AddSlater(atom, ex, ey, ez, er int, zeta, coef float64, element ...int) int {
	if A.normal {
		A.problem("Slater function on atom %d added after normalization, ignored", atom)
		return -1
	}
	s := SlaterFunction{Atom: atom, X: ex, Y: ey, Z: ez, R: er, Zeta: math.Abs(zeta), Contracted: zeta < 0, Coef: coef}
	if len(element) > 0 {
		s.Element = element[0]
	}
	s.Index = len(A.slaters)
	A.slaters = append(A.slaters, s)
	return s.Index
}

//AddSphericalSlater stores a Slater function given by a spherical label (S, Px, Dz2...)
//on atom, of the given element. See SphericalSlater.
func (A *Assembler) AddSphericalSlater(atom, element int, label string, zeta, coef float64) error {
	if A.normal {
		return newError(AlreadyNormalized, fmt.Sprintf("%s on atom %d", label, atom), false, "AddSphericalSlater")
	}
	s, err := SphericalSlater(atom, element, label, zeta, coef)
	if err != nil {
		A.problem("Slater function %s on atom %d dropped: %s", label, atom, err.Error())
		return errDecorate(err, "AddSphericalSlater")
	}
	s.Index = len(A.slaters)
	A.slaters = append(A.slaters, s)
	return nil
}

//RetypeShells changes every declared shell of type from to type to, and returns
//how many were changed. Some formats only say that their D or F shells are
//spherical after the basis set has been given. It does nothing once orbitals
//have been read, as their lengths depend on the shell types.
func (A *Assembler) RetypeShells(from, to ShellType) int {
	if len(A.orbitals) > 0 || A.discard > 0 {
		A.problem("can't change %s shells to %s after reading orbitals", from, to)
		return 0
	}
	n := 0
	for i, s := range A.shells {
		if s.Type == from {
			A.shells[i].Type = to
			n++
		}
	}
	return n
}

//SetVendorOrder gives the order in which the program prints the functions of
//shell type t, as a list of labels. On failure, t is disabled for the rest
//of the model, and orbitals over shells of type t will not be available.
func (A *Assembler) SetVendorOrder(t ShellType, labels []string, minLabelLength int) error {
	return A.SetVendorOrderFrom(t, labels, t.Canonical(), minLabelLength)
}

//SetVendorOrderFrom is like SetVendorOrder, but the canonical order is given as
//a list of labels in the vendor's vocabulary. See BuildMapFrom.
func (A *Assembler) SetVendorOrderFrom(t ShellType, labels, reference []string, minLabelLength int) error {
	m, err := A.maps.GetFrom(t, labels, reference, minLabelLength)
	if err != nil {
		A.problem("no orbitals for %s shells with labels %v: %s", t, labels, err.Error())
		return errDecorate(err, "SetVendorOrder")
	}
	if A.opts.Verbose {
		A.opts.Logger.Printf("%s functions: vendor %v, map %v", t, labels, m.perm)
	}
	return nil
}

//EnableHighL allows the evaluator to use shells of the G, H or I type t.
func (A *Assembler) EnableHighL(t ShellType) {
	if !t.HighL() {
		return
	}
	for _, v := range A.highL {
		if v == t {
			return
		}
	}
	A.highL = append(A.highL, t)
}

//FinalizeSlaters multiplies the coefficient of every Slater function of the model by
//its normalization constant. It can only run once per model; the second call returns
//an AlreadyNormalized error and changes nothing. Functions that can't be normalized
//get a zero coefficient, and an UnsupportedNormalization error is returned after
//all the others have been scaled.
func (A *Assembler) FinalizeSlaters() error {
	if A.normal {
		return newError(AlreadyNormalized, "", false, "FinalizeSlaters")
	}
	A.normal = true
	if A.opts.SkipSlaterScaling {
		return nil
	}
	var bad []string
	for i, s := range A.slaters {
		f := s.Scale()
		if f == 0 {
			A.problem("can't normalize Slater function %d (%s), its coefficient will be zero", i, s)
			bad = append(bad, fmt.Sprintf("%d", i))
		}
		A.slaters[i].Coef = s.Coef * f
	}
	if len(bad) > 0 {
		return newError(UnsupportedNormalization, "functions "+strings.Join(bad, " "), false, "FinalizeSlaters")
	}
	return nil
}

//BeginOrbital starts a new orbital. The coefficients are given in the vendor's order
//through the returned value, and the orbital is stored with EndOrbital. Any number of
//orbitals can be pending at the same time.
func (A *Assembler) BeginOrbital() *PendingOrbital {
	return new(PendingOrbital)
}

//blocked returns the shell types in the model that have a failed permutation map.
func (A *Assembler) blocked() []ShellType {
	var ret []ShellType
	for _, t := range A.maps.FailedTypes() {
		for _, s := range A.shells {
			if s.Type == t {
				ret = append(ret, t)
				break
			}
		}
	}
	return ret
}

func window(v []float64, offset, n int) []float64 {
	if offset >= len(v) {
		return nil
	}
	end := offset + n
	if end > len(v) {
		end = len(v)
	}
	return v[offset:end]
}

//EndOrbital puts the coefficients of p in the canonical order and stores the orbital.
//Energy and occupancy are NaN if not known. Coefficients never given are zero.
//For Slater models the coefficients are kept in the order of the functions.
func (A *Assembler) EndOrbital(p *PendingOrbital, energy, occupancy float64, symmetry string, spin Spin) error {
	if p == nil || p.done {
		return newError(BadHandle, "orbital already ended", false, "EndOrbital")
	}
	p.done = true
	if b := A.blocked(); len(b) > 0 {
		A.discard++
		return newError(PermutationMismatch, fmt.Sprintf("orbital discarded, no map for %v", b), true, "EndOrbital")
	}
	var coefs []float64
	if len(A.shells) > 0 {
		coefs = make([]float64, basisCount(A.shells))
		offset := 0
		for _, s := range A.shells {
			n := s.Type.Len()
			m, ok := A.maps.Lookup(s.Type)
			if !ok {
				m = IdentityMap(s.Type)
			}
			m.Apply(coefs[offset:offset+n], window(p.raw, offset, n))
			offset += n
		}
	} else {
		coefs = make([]float64, len(p.raw))
		copy(coefs, p.raw)
	}
	o := &Orbital{Coefficients: coefs, Energy: energy, Occupancy: occupancy, Symmetry: symmetry, Spin: spin, Index: len(A.orbitals)}
	A.orbitals = append(A.orbitals, o)
	return nil
}

//checkPrimitives invalidates the shells whose primitives don't match the declared number.
func (A *Assembler) checkPrimitives() error {
	var bad []string
	for i := range A.shells {
		if A.shells[i].Valid && len(A.prims[i]) != A.shells[i].Count {
			A.shells[i].Valid = false
			A.problem("shell %d (%s on atom %d) declared %d primitives, got %d. Shell invalidated", i, A.shells[i].Type, A.shells[i].Atom, A.shells[i].Count, len(A.prims[i]))
			bad = append(bad, fmt.Sprintf("%d", i))
		}
	}
	if len(bad) > 0 {
		return newError(PrimitiveCountMismatch, "shells "+strings.Join(bad, " "), false, "checkPrimitives")
	}
	return nil
}

//MOData checks and completes the current model and returns a copy of it, which
//will not change with further calls to the assembler.
//The primitive counts of the shells are checked, the Slater functions are normalized
//if that wasn't done, and the orbitals are sorted as the options ask.
//An error is returned only if there are no usable orbitals, unless the options
//allow that. The model is returned in any case.
func (A *Assembler) MOData() (*MOData, error) {
	A.checkPrimitives()
	if len(A.slaters) > 0 && !A.normal {
		A.FinalizeSlaters() //problems, if any, are already logged
	}
	if len(A.shells) > 0 && len(A.slaters) > 0 {
		A.problem("model has both Gaussian shells and Slater functions, the Slater functions are ignored for the orbitals")
	}
	M := &MOData{
		CalculationType: A.opts.CalculationType,
		EnergyUnits:     A.opts.EnergyUnits,
		Normalized:      A.normal,
		HighL:           A.highL,
	}
	M.Shells = make([]Shell, len(A.shells))
	for i, s := range A.shells {
		s.First = len(M.Gaussians)
		M.Gaussians = append(M.Gaussians, A.prims[i]...)
		M.Shells[i] = s
	}
	M.Slaters = A.slaters
	M.Orbitals = A.orbitals
	M.OrbitalsAvailable = len(A.orbitals) > 0
	if b := A.blocked(); len(b) > 0 && (len(A.orbitals) > 0 || A.discard > 0) {
		A.problem("orbitals discarded: no permutation map for shell types %v", b)
		M.Orbitals = nil
		M.OrbitalsAvailable = false
	}
	if A.dropped > 0 && M.OrbitalsAvailable {
		A.problem("orbitals discarded: %d shells were dropped", A.dropped)
		M.Orbitals = nil
		M.OrbitalsAvailable = false
	}
	ret := M.Copy()
	if A.opts.SortSlaters && len(ret.Shells) == 0 && len(ret.Slaters) > 0 {
		if err := sortSlaterModel(ret); err != nil {
			A.problem("Slater functions not sorted: %s", err.Error())
		}
	}
	if A.opts.SortByEnergy {
		SortByEnergy(ret.Orbitals)
	}
	ret.Problems = append([]string(nil), A.problems...)
	if !ret.OrbitalsAvailable && !A.opts.AllowNoOrbitals {
		return ret, newError(NoOrbitals, strings.Join(ret.Problems, "; "), true, "MOData")
	}
	return ret, nil
}

//sortSlaterModel groups the Slater functions of M by atom, and reorders the
//orbital coefficients to match.
func sortSlaterModel(M *MOData) error {
	for _, s := range M.Slaters {
		if s.Contracted {
			return newError(BadPermutation, "contracted Slater functions can't be reordered", false, "sortSlaterModel")
		}
	}
	pointers := SlaterAtomOrder(M.Slaters)
	sorted := make([]SlaterFunction, len(M.Slaters))
	for j, p := range pointers {
		sorted[j] = M.Slaters[p]
	}
	if err := SortCoefficientsByAtom(M.Orbitals, pointers); err != nil {
		return errDecorate(err, "sortSlaterModel")
	}
	M.Slaters = sorted
	return nil
}
