/*
 * shells.go, part of gomo.
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
	"strconv"
	"strings"
)

//ShellType identifies a family of basis functions, and whether
//it is the cartesian or the spherical variant.
type ShellType int

const (
	S ShellType = iota
	P
	SP
	DS
	DC
	FS
	FC
	GS
	GC
	HS
	HC
	IS
	IC
	nShellTypes
)

//ShellTypes returns all the shell types, in order.
func ShellTypes() []ShellType {
	ret := make([]ShellType, nShellTypes)
	for i := range ret {
		ret[i] = ShellType(i)
	}
	return ret
}

var shellTypeTags = [nShellTypes]string{"S", "P", "SP", "5D", "D", "7F", "F", "9G", "G", "11H", "H", "13I", "I"}

//angular momentum of each type. SP counts as p.
var shellTypeL = [nShellTypes]int{0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6}

//Tags (upper case) accepted for each shell type, including the aliases
//used by the different programs.
var shellTags = map[string]ShellType{
	"S":   S,
	"P":   P,
	"X":   P,
	"SP":  SP,
	"L":   SP,
	"5D":  DS,
	"D":   DC,
	"6D":  DC,
	"7F":  FS,
	"F":   FC,
	"10F": FC,
	"9G":  GS,
	"G":   GC,
	"15G": GC,
	"11H": HS,
	"H":   HC,
	"21H": HC,
	"13I": IS,
	"I":   IC,
	"28I": IC,
}

//The canonical orders. Everything that needs a canonical order gets it from
//here. The D and F orders are the ones the orbital evaluator expects.
var canonicalOrders = [nShellTypes][]string{
	S:  {"S"},
	P:  {"X", "Y", "Z"},
	SP: {"S", "X", "Y", "Z"},
	DS: sphericalLabels('d', 2),
	DC: {"XX", "YY", "ZZ", "XY", "XZ", "YZ"},
	FS: sphericalLabels('f', 3),
	FC: {"XXX", "YYY", "ZZZ", "XYY", "XXY", "XXZ", "XZZ", "YZZ", "YYZ", "XYZ"},
	GS: sphericalLabels('g', 4),
	GC: {"XXXX", "YYYY", "ZZZZ", "XXXY", "XXXZ", "XYYY", "YYYZ", "XZZZ", "YZZZ", "XXYY", "XXZZ", "YYZZ", "XXYZ", "XYYZ", "XYZZ"},
	HS: sphericalLabels('h', 5),
	HC: cartesianLabels(5),
	IS: sphericalLabels('i', 6),
	IC: cartesianLabels(6),
}

//sphericalLabels returns the real spherical harmonic labels in the order
//m=0, 1+, 1-, 2+, 2-...
func sphericalLabels(family byte, l int) []string {
	ret := make([]string, 0, 2*l+1)
	ret = append(ret, fmt.Sprintf("%c0", family))
	for m := 1; m <= l; m++ {
		ret = append(ret, fmt.Sprintf("%c%d+", family, m), fmt.Sprintf("%c%d-", family, m))
	}
	return ret
}

//cartesianLabels returns all the x^a y^b z^c monomials with a+b+c=l,
//a descending, then b descending.
func cartesianLabels(l int) []string {
	ret := make([]string, 0, (l+1)*(l+2)/2)
	for a := l; a >= 0; a-- {
		for b := l - a; b >= 0; b-- {
			c := l - a - b
			ret = append(ret, strings.Repeat("X", a)+strings.Repeat("Y", b)+strings.Repeat("Z", c))
		}
	}
	return ret
}

func (t ShellType) valid() bool { return t >= 0 && t < nShellTypes }

//String returns the canonical tag for the shell type.
func (t ShellType) String() string {
	if !t.valid() {
		return fmt.Sprintf("ShellType(%d)", int(t))
	}
	return shellTypeTags[t]
}

//Len returns the number of basis functions in a shell of type t.
func (t ShellType) Len() int {
	if !t.valid() {
		return 0
	}
	return len(canonicalOrders[t])
}

//L returns the angular momentum of the shell type (1 for SP).
func (t ShellType) L() int {
	if !t.valid() {
		return -1
	}
	return shellTypeL[t]
}

//Spherical returns true for the pure (spherical harmonic) types.
func (t ShellType) Spherical() bool {
	switch t {
	case DS, FS, GS, HS, IS:
		return true
	}
	return false
}

//HighL returns true for the G, H and I types, which the evaluator only
//uses if the scanner enabled them.
func (t ShellType) HighL() bool {
	return t >= GS && t.valid()
}

//Canonical returns a copy of the canonical order of the basis functions
//for the shell type.
func (t ShellType) Canonical() []string {
	if !t.valid() {
		return nil
	}
	ret := make([]string, len(canonicalOrders[t]))
	copy(ret, canonicalOrders[t])
	return ret
}

//cleanTag upper-cases the tag and removes whitespace and parentheses.
func cleanTag(tag string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '(', ')':
			return -1
		}
		return r
	}, strings.ToUpper(tag))
}

func isXYZ(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c != 'X' && c != 'Y' && c != 'Z' {
			return false
		}
	}
	return true
}

//cartesianOfL returns the cartesian shell type for angular momentum l>=1.
func cartesianOfL(l int) (ShellType, bool) {
	switch l {
	case 1:
		return P, true
	case 2:
		return DC, true
	case 3:
		return FC, true
	case 4:
		return GC, true
	case 5:
		return HC, true
	case 6:
		return IC, true
	}
	return S, false
}

//family letters, in angular momentum order
const families = "SPDFGHI"

//sphericalOf returns the spherical type for a family letter.
func sphericalOf(family byte) (ShellType, bool) {
	switch family {
	case 'D':
		return DS, true
	case 'F':
		return FS, true
	case 'G':
		return GS, true
	case 'H':
		return HS, true
	case 'I':
		return IS, true
	}
	return S, false
}

//ShellTypeOf returns the shell type for a tag given by a vendor scanner.
//Besides the canonical tags and their aliases (L, 6D, 10F...) it accepts
//cartesian function labels (XX, DXYZ...), spherical labels (d1+, F0) and
//NBO style labels ((D6), (F10), (PX)). The second value is false if the
//tag is not recognized.
func ShellTypeOf(tag string) (ShellType, bool) {
	t := cleanTag(tag)
	if t == "" {
		return S, false
	}
	if st, ok := shellTags[t]; ok {
		return st, true
	}
	if isXYZ(t) {
		return cartesianOfL(len(t))
	}
	family := t[0]
	if strings.IndexByte(families, family) < 0 {
		return S, false
	}
	rest := t[1:]
	if isXYZ(rest) {
		return cartesianOfL(len(rest))
	}
	if family == 'S' || family == 'P' {
		return S, false
	}
	//spherical labels such as d1+ and f0
	if n := len(rest); n > 1 && (rest[n-1] == '+' || rest[n-1] == '-') {
		m, err := strconv.Atoi(rest[:n-1])
		if err != nil || m < 0 || m > strings.IndexByte(families, family) {
			return S, false
		}
		return sphericalOf(family)
	}
	//NBO labels, (D1)...(D6), (F1)...(F10). Only D and F are numbered like this.
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return S, false
	}
	switch family {
	case 'D':
		if idx <= DS.Len() {
			return DS, true
		}
		if idx <= DC.Len() {
			return DC, true
		}
	case 'F':
		if idx <= FS.Len() {
			return FS, true
		}
		if idx <= FC.Len() {
			return FC, true
		}
	default:
		if idx == 0 {
			return sphericalOf(family)
		}
	}
	return S, false
}

//IsSupportedFamily returns true if coefficients for the function family
//letter c (S, P, L, D, F, G, H or I, any case) can be carried by this package.
//Scanners use it to filter the coefficient lines they keep.
func IsSupportedFamily(c rune) bool {
	return strings.ContainsRune("SPLDFGHI", c) || strings.ContainsRune("spldfghi", c)
}
