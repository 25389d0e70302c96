/*
 * sort.go, part of gomo.
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
	"sort"
)

//SortByEnergy sorts the orbitals by increasing energy. The sort is stable.
//An orbital without energy is never less than another, so those end up at
//the end, in the order they had.
func SortByEnergy(orbitals []*Orbital) {
	sort.SliceStable(orbitals, func(i, j int) bool {
		a, b := orbitals[i], orbitals[j]
		if !a.HasEnergy() {
			return false
		}
		return !b.HasEnergy() || a.Energy < b.Energy
	})
}

//checkPermutation returns an error if perm is not a permutation of 0..len(perm)-1
func checkPermutation(perm []int) error {
	seen := make([]bool, len(perm))
	for j, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return newError(BadPermutation, fmt.Sprintf("element %d is %d", j, p), false, "checkPermutation")
		}
		seen[p] = true
	}
	return nil
}

//SortCoefficientsByAtom reorders the coefficients of every orbital so the new
//coefficient j is the old coefficient perm[j]. The orbitals can't be longer than perm;
//shorter ones are padded with zeros.
func SortCoefficientsByAtom(orbitals []*Orbital, perm []int) error {
	if err := checkPermutation(perm); err != nil {
		return errDecorate(err, "SortCoefficientsByAtom")
	}
	n := len(perm)
	for i, o := range orbitals {
		if len(o.Coefficients) > n {
			return newError(BadPermutation, fmt.Sprintf("orbital %d has %d coefficients, permutation %d", i, len(o.Coefficients), n), false, "SortCoefficientsByAtom")
		}
	}
	for _, o := range orbitals {
		old := o.Coefficients
		c := make([]float64, n)
		for j, p := range perm {
			if p < len(old) {
				c[j] = old[p]
			}
		}
		o.Coefficients = c
	}
	return nil
}

//SlaterAtomOrder sorts slaters by atom, keeping the relative order of the functions
//of each atom, and returns, for each position in the sorted slice, the
//position the function had before sorting.
func SlaterAtomOrder(slaters []SlaterFunction) []int {
	pointers := make([]int, len(slaters))
	for i := range pointers {
		pointers[i] = i
	}
	sort.SliceStable(pointers, func(i, j int) bool {
		return slaters[pointers[i]].Atom < slaters[pointers[j]].Atom
	})
	return pointers
}

//ShellAtomOrder returns the permutation of the basis functions of shells that puts all
//the functions of the first atom first, then those of the second, and so on, keeping the
//order within each atom. It can be given to SortCoefficientsByAtom.
func ShellAtomOrder(shells []Shell) []int {
	first := make([]int, len(shells)) //first basis function of each shell
	order := make([]int, len(shells))
	n := 0
	for i, s := range shells {
		first[i] = n
		order[i] = i
		n += s.Type.Len()
	}
	sort.SliceStable(order, func(i, j int) bool {
		return shells[order[i]].Atom < shells[order[j]].Atom
	})
	perm := make([]int, 0, n)
	for _, i := range order {
		for k := 0; k < shells[i].Type.Len(); k++ {
			perm = append(perm, first[i]+k)
		}
	}
	return perm
}

//HOMO returns the index of the highest occupied orbital in a list sorted by energy,
//or -1 if none is occupied. Orbitals without occupancy count as empty.
func HOMO(orbitals []*Orbital) int {
	for i := len(orbitals) - 1; i >= 0; i-- {
		if orbitals[i].Occupied() {
			return i
		}
	}
	return -1
}

//LUMO returns the index of the lowest unoccupied orbital in a list sorted by energy,
//or -1 if all are occupied.
func LUMO(orbitals []*Orbital) int {
	for i, o := range orbitals {
		if !o.Occupied() {
			return i
		}
	}
	return -1
}
