/*
 * slater.go, part of gomo.
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
	"math"
)

//Sentinel exponent. X == Sph2 means the function is the 2z^2-x^2-y^2
//combination, Y == Sph2 means x^2-y^2.
const Sph2 = -2

//SlaterFunction is one Slater-type function, psi = Coef x^X y^Y z^Z r^R exp(-Zeta r),
//placed on Atom (1-based).
type SlaterFunction struct {
	Atom       int
	X, Y, Z, R int
	Zeta       float64 //always positive
	Contracted bool    //the function shares the MO coefficient of the previous one
	Coef       float64
	Element    int //atomic number, 0 if not known
	Index      int //declaration order, to undo sorting by atom
}

//(2n)! for n = 0..12
var fact2n = [...]float64{
	1,
	2,
	24,
	720,
	40320,
	3628800,
	479001600,
	87178291200,
	20922789888000,
	6402373705728000,
	2432902008176640000,
	1124000727777607680000,
	620448401733239439360000,
}

//(2k-1)!! for k = 0..7
var dfact2 = [...]float64{1, 1, 3, 15, 105, 945, 10395, 135135}

func iabs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

//L returns the angular momentum of the function.
func (s SlaterFunction) L() int {
	return iabs(s.X) + iabs(s.Y) + iabs(s.Z)
}

//Spherical returns true if the function uses one of the spherical sentinels.
func (s SlaterFunction) Spherical() bool {
	return s.X < 0 || s.Y < 0 || s.Z < 0
}

//Scale returns the normalization constant for the function. See the
//package-level Scale.
func (s SlaterFunction) Scale() float64 {
	return Scale(s.X, s.Y, s.Z, s.R, s.Zeta, s.Element)
}

func (s SlaterFunction) String() string {
	return fmt.Sprintf("atom %d x^%d y^%d z^%d r^%d zeta %.6f coef %.6f", s.Atom, s.X, s.Y, s.Z, s.R, s.Zeta, s.Coef)
}

//Scale returns the factor that normalizes the Slater function x^ex y^ey z^ez r^er exp(-zeta r)
//to unit self-overlap:
//
//	(2 zeta)^(n+1/2) sqrt( g / (4 pi (2n)!) )
//
//with el = |ex|+|ey|+|ez|, n = el+er+1, g = (2el+1)!! for s and p, and
//g = (2el+1)!! / ((2ex-1)!! (2ey-1)!! (2ez-1)!!) for the cartesian d functions and up.
//For the spherical d functions the denominator is 12 (ex == Sph2) or 4 (ey == Sph2).
//If element > 0, n for s, p and d functions is taken from the semi-empirical
//tables (NPQs, NPQp, NPQd) instead.
//Scale returns 0 for configurations it can't normalize, such as spherical f functions.
func Scale(ex, ey, ez, er int, zeta float64, element int) float64 {
	el := iabs(ex) + iabs(ey) + iabs(ez)
	spherical := ex < 0 || ey < 0 || ez < 0
	n := el + er + 1
	if element > 0 && element <= MaxElement {
		switch el {
		case 0:
			n = NPQs(element)
		case 1:
			n = NPQp(element)
		case 2:
			n = NPQd(element)
		}
	}
	if n <= el || n >= len(fact2n) || el+1 >= len(dfact2) {
		return 0
	}
	g := dfact2[el+1]
	switch {
	case !spherical && el >= 2:
		g /= dfact2[ex] * dfact2[ey] * dfact2[ez]
	case spherical:
		if el != 2 || ez != 0 {
			return 0 //no spherical f or higher, nor sentinels on z
		}
		switch {
		case ex == Sph2 && ey == 0:
			g /= 12
		case ey == Sph2 && ex == 0:
			g /= 4
		default:
			return 0
		}
	}
	return math.Pow(2*math.Abs(zeta), float64(n)+0.5) * math.Sqrt(g/(4*math.Pi*fact2n[n]))
}

//exponents for the spherical labels of MOPAC-style output.
var sphericalSlaterExponents = map[string][3]int{
	"S":      {0, 0, 0},
	"PX":     {1, 0, 0},
	"PY":     {0, 1, 0},
	"PZ":     {0, 0, 1},
	"DX2-Y2": {0, Sph2, 0},
	"DX2Y2":  {0, Sph2, 0},
	"DXZ":    {1, 0, 1},
	"DZ2":    {Sph2, 0, 0},
	"DYZ":    {0, 1, 1},
	"DXY":    {1, 1, 0},
}

//SphericalSlater builds the Slater function for a spherical label (S, Px, Py, Pz,
//Dx2-y2, Dxz, Dz2, Dyz, Dxy) on atom, of the given element. The radial exponent
//comes from the element's principal quantum number for the shell. A negative zeta
//marks a contracted function.
func SphericalSlater(atom, element int, label string, zeta, coef float64) (SlaterFunction, error) {
	ex, ok := sphericalSlaterExponents[cleanTag(label)]
	if !ok {
		return SlaterFunction{}, newError(UnknownShellType, fmt.Sprintf("spherical Slater label %q", label), false, "SphericalSlater")
	}
	s := SlaterFunction{Atom: atom, X: ex[0], Y: ex[1], Z: ex[2], Zeta: math.Abs(zeta), Contracted: zeta < 0, Coef: coef, Element: element}
	var n int
	switch l := s.L(); l {
	case 0:
		n = NPQs(element)
	case 1:
		n = NPQp(element)
	default:
		n = NPQd(element)
	}
	s.R = n - s.L() - 1
	if s.R < 0 {
		return SlaterFunction{}, newError(UnsupportedNormalization, fmt.Sprintf("no %s shell for element %d", label, element), false, "SphericalSlater")
	}
	return s, nil
}
