/*
 * interfaces.go, part of gomo.
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
	"strings"
)

//Builder is the narrow interface a vendor scanner drives, and *Assembler
//implements it. It covers most formats. Scanners for formats with spherical
//Slater labels, late spherical declarations or non-standard label vocabularies
//also use the methods of *Assembler that are not part of Builder
//(AddSphericalSlater, RetypeShells, SetVendorOrderFrom, EnableHighL and
//FinalizeSlaters).
type Builder interface {

	//DeclareShell places a shell with nPrimitives Gaussian primitives on
	//the (1-based) atom. Unknown tags are dropped and reported.
	DeclareShell(atom int, tag string, nPrimitives int) (ShellHandle, error)

	//AddGaussian appends one primitive to a declared shell. coefSP is only
	//meaningful for SP shells.
	AddGaussian(h ShellHandle, exponent, coef float64, coefSP ...float64) error

	//AddSlater stores one raw Slater function, returning its index.
	AddSlater(atom, ex, ey, ez, er int, zeta, coef float64, element ...int) int

	//SetVendorOrder gives the order in which the vendor prints the functions
	//of a shell type.
	SetVendorOrder(t ShellType, labels []string, minLabelLength int) error

	//BeginOrbital starts collecting the vendor-order coefficients of one MO.
	BeginOrbital() *PendingOrbital

	//EndOrbital closes a pending orbital. Use math.NaN() for an unknown
	//energy or occupancy.
	EndOrbital(p *PendingOrbital, energy, occupancy float64, symmetry string, spin Spin) error
}

//Errors

//Error is the error type returned by every function in this module. As the
//gochem errors, it carries a "decoration" slice with the functions it went
//through on its way up.
type Error struct {
	message  string //one of the constants below
	detail   string
	deco     []string
	critical bool //a critical error invalidates the model's orbitals
}

func (err Error) Error() string {
	if err.detail == "" {
		return fmt.Sprintf("gomo: %s", err.message)
	}
	return fmt.Sprintf("gomo: %s: %s", err.message, err.detail)
}

//Message returns the bare message, which can be compared with the constants
//of this package.
func (err Error) Message() string { return err.message }

//Detail returns the extra information attached to the error, if any.
func (err Error) Detail() string { return err.detail }

//Critical returns true if the error means the orbitals of the current model
//can't be trusted.
func (err Error) Critical() bool { return err.critical }

//Decorate returns a copy of the error with deco added to its decoration.
//The original error is not changed.
func (err Error) Decorate(deco string) Error {
	if deco == "" {
		return err
	}
	d := make([]string, len(err.deco), len(err.deco)+1)
	copy(d, err.deco)
	err.deco = append(d, deco)
	return err
}

//Trace returns the decoration slice as a single string, innermost caller first.
func (err Error) Trace() string {
	return strings.Join(err.deco, " <- ")
}

const (
	UnknownShellType         = "Unrecognized shell type"
	PermutationMismatch      = "Vendor function labels don't match the canonical order"
	UnsupportedNormalization = "Unsupported Slater normalization"
	PrimitiveCountMismatch   = "Declared and supplied primitive counts differ"
	AlreadyNormalized        = "Slater functions already normalized for this model"
	BadPermutation           = "Not a valid permutation"
	NoOrbitals               = "No usable molecular orbitals"
	BadHandle                = "Invalid shell handle"
)

func newError(message, detail string, critical bool, caller string) Error {
	return Error{message: message, detail: detail, critical: critical, deco: []string{caller}}
}

//errDecorate decorates err with the caller's name if it is an Error.
//other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		return err2.Decorate(caller)
	}
	return err
}
