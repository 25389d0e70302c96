/*
 * atomicdata.go, part of gomo.
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

import "strings"

//MaxElement is the largest atomic number with tabulated data.
const MaxElement = 103

//Element symbols, indexed by atomic number.
var elementSymbols = [MaxElement + 1]string{"Xx",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne", // 10
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca", // 20
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", // 30
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr", // 40
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", // 50
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd", // 60
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", // 70
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", // 80
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th", // 90
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm", // 100
	"Md", "No", "Lr", // 103
}

//A map for assigning atomic numbers to element symbols.
//filled from elementSymbols, keys are upper case.
var symbolZ = func() map[string]int {
	m := make(map[string]int, MaxElement)
	for z := 1; z <= MaxElement; z++ {
		m[strings.ToUpper(elementSymbols[z])] = z
	}
	return m
}()

//Principal quantum number of the valence shell (i.e. the period).
var principalQuantumNumber = [MaxElement + 1]int{0,
	1, 1, // 2
	2, 2, 2, 2, 2, 2, 2, 2, // 10
	3, 3, 3, 3, 3, 3, 3, 3, // 18
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, // 36
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, // 54
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, // 74
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, // 86
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, // 103
}

//Principal quantum number of the d shells of the semi-empirical
//parameter sets. Transition metals use one shell below the period,
//main-group and noble-gas polarization functions one (or two) above.
//0 means the element has no d shell.
var principalQuantumNumberD = [MaxElement + 1]int{0,
	0, 3, // 2
	0, 0, 0, 0, 0, 0, 0, 3, // 10
	3, 3, 3, 3, 3, 3, 3, 4, // 18
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, // 30
	4, 4, 4, 4, 4, 5, // 36
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, // 48
	5, 5, 5, 5, 5, 6, // 54
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, // 67
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, // 80
	6, 6, 6, 6, 6, 7, // 86
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, // 103
}

//AtomicNumber returns the atomic number for an element symbol (case
//insensitive), or 0 if the symbol is not known.
func AtomicNumber(symbol string) int {
	return symbolZ[strings.ToUpper(strings.TrimSpace(symbol))]
}

//Symbol returns the element symbol for the atomic number z, or "" if z is
//out of the table.
func Symbol(z int) string {
	if z < 1 || z > MaxElement {
		return ""
	}
	return elementSymbols[z]
}

//NPQ returns the principal quantum number of the valence shell of element z.
//0 for unknown elements.
func NPQ(z int) int {
	if z < 1 || z > MaxElement {
		return 0
	}
	return principalQuantumNumber[z]
}

//NPQs returns the principal quantum number used for the s orbitals of element
//z. Noble gases (except He) use the next shell.
func NPQs(z int) int {
	n := NPQ(z)
	switch z {
	case 10, 18, 36, 54, 86:
		return n + 1
	}
	return n
}

//NPQp returns the principal quantum number for p orbitals. Helium's p
//polarization functions are 2p.
func NPQp(z int) int {
	if z == 2 {
		return 2
	}
	return NPQ(z)
}

//NPQd returns the principal quantum number for the d orbitals of element z,
//or 0 if the element has none.
func NPQd(z int) int {
	if z < 1 || z > MaxElement {
		return 0
	}
	return principalQuantumNumberD[z]
}
