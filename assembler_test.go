/*
 * assembler_test.go, part of gomo.
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
	"io"
	"log"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func quietAssembler(allowEmpty bool) *Assembler {
	o := new(Options)
	o.SetDefaults()
	o.Logger = log.New(io.Discard, "", 0)
	o.AllowNoOrbitals = allowEmpty
	return NewAssembler(o)
}

//declareD puts a cartesian D shell with 6 primitives on atom.
func declareD(Te *testing.T, A *Assembler, atom int) {
	h, err := A.DeclareShell(atom, "D", 6)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		if err := A.AddGaussian(h, 10/float64(i+1), 0.1*float64(i+1)); err != nil {
			Te.Fatal(err)
		}
	}
}

func TestOneAtomD(Te *testing.T) {
	A := quietAssembler(false)
	var B Builder = A //the assembler is what the scanners get
	declareD(Te, A, 1)
	vendor := ParseLabels("DXY DXZ DYZ DXX DYY DZZ")
	if err := B.SetVendorOrder(DC, vendor, 3); err != nil {
		Te.Fatal(err)
	}
	p := B.BeginOrbital()
	for i, v := range []float64{10, 20, 30, 40, 50, 60} {
		p.Set(i, v)
	}
	if err := B.EndOrbital(p, -0.5, 2, "A1", NoSpin); err != nil {
		Te.Fatal(err)
	}
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if len(M.Orbitals) != 1 || !M.OrbitalsAvailable {
		Te.Fatalf("expected one orbital, got %d", len(M.Orbitals))
	}
	c := M.Orbitals[0].Coefficients
	if c[0] != 40 { //the vendor's XX column
		Te.Errorf("XX coefficient is %g", c[0])
	}
	if !floats.Equal(c, []float64{40, 50, 60, 10, 20, 30}) {
		Te.Errorf("got %v", c)
	}
	if len(M.Shells) != 1 || M.Shells[0].First != 0 || len(M.Gaussians) != 6 || !M.Shells[0].Valid {
		Te.Errorf("wrong basis %v, %d primitives", M.Shells, len(M.Gaussians))
	}
	if M.BasisCount() != 6 {
		Te.Errorf("basis count %d", M.BasisCount())
	}
	if r, cols := M.Coefficients().Dims(); r != 1 || cols != 6 {
		Te.Errorf("coefficient matrix is %dx%d", r, cols)
	}
	//the snapshot doesn't change with the assembler
	p = A.BeginOrbital()
	p.Append(1)
	A.EndOrbital(p, 0.1, 0, "", NoSpin)
	if len(M.Orbitals) != 1 {
		Te.Error("the returned data changed")
	}
	M.Orbitals[0].Coefficients[0] = -1
	M2, _ := A.MOData()
	if M2.Orbitals[0].Coefficients[0] != 40 {
		Te.Error("the returned data is not a copy")
	}
}

func TestShellOffsets(Te *testing.T) {
	A := quietAssembler(false)
	hs, _ := A.DeclareShell(1, "S", 1)
	hp, _ := A.DeclareShell(1, "P", 1)
	declareD(Te, A, 2)
	A.AddGaussian(hs, 1, 1)
	A.AddGaussian(hp, 2, 1)
	//P in z, y, x order
	if err := A.SetVendorOrder(P, ParseLabels("PZ PY PX"), 2); err != nil {
		Te.Fatal(err)
	}
	p := A.BeginOrbital()
	for i := 0; i < 10; i++ {
		p.Append(float64(i))
	}
	if err := A.EndOrbital(p, math.NaN(), math.NaN(), "", Alpha); err != nil {
		Te.Fatal(err)
	}
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	expected := []float64{0, 3, 2, 1, 4, 5, 6, 7, 8, 9}
	if !floats.Equal(M.Orbitals[0].Coefficients, expected) {
		Te.Errorf("got %v, expected %v", M.Orbitals[0].Coefficients, expected)
	}
	//primitives are stored shell by shell, whatever the order they came in
	if M.Shells[0].First != 0 || M.Shells[1].First != 1 || M.Shells[2].First != 2 {
		Te.Errorf("wrong primitive offsets %v", M.Shells)
	}
	if M.Gaussians[1].Exponent != 2 {
		Te.Errorf("wrong primitive order %v", M.Gaussians)
	}
	if M.Orbitals[0].HasEnergy() || M.Orbitals[0].HasOccupancy() || M.Orbitals[0].Spin != Alpha {
		Te.Error("wrong orbital header")
	}
}

func TestUnwrittenSlots(Te *testing.T) {
	A := quietAssembler(false)
	declareD(Te, A, 1)
	p := A.BeginOrbital()
	p.Set(3, 5)
	A.EndOrbital(p, -1, 2, "", NoSpin)
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if !floats.Equal(M.Orbitals[0].Coefficients, []float64{0, 0, 0, 5, 0, 0}) {
		Te.Errorf("got %v", M.Orbitals[0].Coefficients)
	}
}

func TestInterleavedOrbitals(Te *testing.T) {
	A := quietAssembler(false)
	declareD(Te, A, 1)
	A.SetVendorOrder(DC, ParseLabels("XY XZ YZ XX YY ZZ"), 2)
	p1 := A.BeginOrbital()
	p2 := A.BeginOrbital()
	for i := 0; i < 6; i++ {
		p1.Append(float64(i + 1))
		p2.Append(float64(-i - 1))
	}
	A.EndOrbital(p1, -1, 2, "", NoSpin)
	A.EndOrbital(p2, 1, 0, "", NoSpin)
	if err := A.EndOrbital(p2, 1, 0, "", NoSpin); message(err) != BadHandle {
		Te.Errorf("ending an orbital twice should fail, got %v", err)
	}
	M, _ := A.MOData()
	if len(M.Orbitals) != 2 {
		Te.Fatalf("%d orbitals", len(M.Orbitals))
	}
	if M.Orbitals[0].Coefficients[0] != 4 || M.Orbitals[1].Coefficients[0] != -4 {
		Te.Errorf("got %v and %v", M.Orbitals[0].Coefficients, M.Orbitals[1].Coefficients)
	}
}

func TestFailedMap(Te *testing.T) {
	A := quietAssembler(false)
	declareD(Te, A, 1)
	err := A.SetVendorOrder(DC, ParseLabels("XY XZ YZ XX YY"), 2)
	if message(err) != PermutationMismatch {
		Te.Fatalf("wrong error %v", err)
	}
	p := A.BeginOrbital()
	p.Append(1)
	if err := A.EndOrbital(p, 0, 0, "", NoSpin); err == nil {
		Te.Error("orbital accepted with a failed map")
	}
	M, err := A.MOData()
	if message(err) != NoOrbitals {
		Te.Errorf("expected no orbitals, got %v", err)
	}
	if M == nil || M.OrbitalsAvailable || len(M.Orbitals) != 0 || len(M.Shells) != 1 || len(M.Problems) == 0 {
		Te.Errorf("wrong data after a failed map %+v", M)
	}
	//the next model starts clean
	A.NewModel()
	declareD(Te, A, 1)
	if err := A.SetVendorOrder(DC, ParseLabels("XY XZ YZ XX YY ZZ"), 2); err != nil {
		Te.Fatal(err)
	}
	p = A.BeginOrbital()
	p.Append(1)
	if err := A.EndOrbital(p, 0, 0, "", NoSpin); err != nil {
		Te.Fatal(err)
	}
	M, err = A.MOData()
	if err != nil || len(M.Problems) != 0 {
		Te.Errorf("problems carried to the next model: %v %v", err, M.Problems)
	}
}

//A map built for one model must not be used for the next one, and the
//Slater functions of each model are normalized on their own.
func TestModelsIndependent(Te *testing.T) {
	A := quietAssembler(false)
	declareD(Te, A, 1)
	if err := A.SetVendorOrder(DC, ParseLabels("XY XZ YZ XX YY ZZ"), 2); err != nil {
		Te.Fatal(err)
	}
	p := A.BeginOrbital()
	for _, v := range []float64{10, 20, 30, 40, 50, 60} {
		p.Append(v)
	}
	A.EndOrbital(p, -0.5, 2, "", NoSpin)
	A.AddSlater(1, 0, 0, 0, 0, 1, 2)
	if err := A.FinalizeSlaters(); err != nil {
		Te.Fatal(err)
	}
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if !floats.Equal(M.Orbitals[0].Coefficients, []float64{40, 50, 60, 10, 20, 30}) {
		Te.Fatalf("first model not reordered: %v", M.Orbitals[0].Coefficients)
	}
	A.NewModel()
	declareD(Te, A, 1)
	p = A.BeginOrbital()
	for _, v := range []float64{10, 20, 30, 40, 50, 60} {
		p.Append(v)
	}
	A.EndOrbital(p, -0.5, 2, "", NoSpin)
	A.AddSlater(1, 0, 0, 0, 0, 1, 2)
	if err := A.FinalizeSlaters(); err != nil {
		Te.Fatalf("Slater functions of the second model not normalized: %v", err)
	}
	M, err = A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if !floats.Equal(M.Orbitals[0].Coefficients, []float64{10, 20, 30, 40, 50, 60}) {
		Te.Errorf("map of the first model used in the second: %v", M.Orbitals[0].Coefficients)
	}
	if !M.Normalized || !scalar.EqualWithinAbs(M.Slaters[0].Coef, 2/math.Sqrt(math.Pi), tol) {
		Te.Errorf("Slater coefficient %g", M.Slaters[0].Coef)
	}
}

func TestFailedMapOtherType(Te *testing.T) {
	A := quietAssembler(false)
	declareD(Te, A, 1)
	A.SetVendorOrder(FC, ParseLabels("XXX YYY"), 2)
	p := A.BeginOrbital()
	p.Append(1)
	if err := A.EndOrbital(p, 0, 0, "", NoSpin); err != nil {
		Te.Error(err)
	}
	if _, err := A.MOData(); err != nil {
		Te.Error("a failed map for a type not in the model should not matter", err)
	}
}

func TestLateFailedMap(Te *testing.T) {
	A := quietAssembler(true)
	declareD(Te, A, 1)
	p := A.BeginOrbital()
	p.Append(1)
	A.EndOrbital(p, 0, 0, "", NoSpin)
	A.SetVendorOrder(DC, ParseLabels("XY XY YZ XX YY ZZ"), 2)
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if M.OrbitalsAvailable || len(M.Orbitals) != 0 {
		Te.Error("orbitals kept after a failed map")
	}
}

func TestUnknownShell(Te *testing.T) {
	A := quietAssembler(true)
	h, err := A.DeclareShell(1, "K", 3)
	if h != -1 || message(err) != UnknownShellType {
		Te.Errorf("unknown shell accepted: %d %v", h, err)
	}
	if err := A.AddGaussian(h, 1, 1); message(err) != BadHandle {
		Te.Errorf("bad handle accepted: %v", err)
	}
	A.DeclareShell(1, "S", 0)
	p := A.BeginOrbital()
	p.Append(1)
	A.EndOrbital(p, 0, 2, "", NoSpin)
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if len(M.Shells) != 1 || M.OrbitalsAvailable {
		Te.Error("orbitals of a model with a dropped shell should not be available")
	}
}

func TestNegativePrimitives(Te *testing.T) {
	A := quietAssembler(true)
	h, err := A.DeclareShell(1, "D", -1)
	if h != -1 || message(err) != PrimitiveCountMismatch {
		Te.Errorf("negative primitive count accepted: %d %v", h, err)
	}
	A.DeclareShell(1, "S", 0)
	p := A.BeginOrbital()
	p.Append(1)
	A.EndOrbital(p, 0, 2, "", NoSpin)
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if len(M.Shells) != 1 || M.OrbitalsAvailable || len(M.Problems) == 0 {
		Te.Error("orbitals of a model with a dropped shell should not be available")
	}
}

func TestPrimitiveMismatch(Te *testing.T) {
	A := quietAssembler(true)
	h, _ := A.DeclareShell(1, "S", 3)
	A.AddGaussian(h, 1, 1)
	A.AddGaussian(h, 2, 1)
	h2, _ := A.DeclareShell(2, "SP", 1)
	A.AddGaussian(h2, 1, 0.5, 0.7)
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if M.Shells[0].Valid || !M.Shells[1].Valid {
		Te.Errorf("wrong validity %v", M.Shells)
	}
	if M.Shells[1].First != 2 || M.Gaussians[2].CoefSP != 0.7 {
		Te.Error("shells after an invalid one moved")
	}
	if len(M.Problems) != 1 {
		Te.Errorf("expected one problem, got %v", M.Problems)
	}
}

func TestRetypeShells(Te *testing.T) {
	A := quietAssembler(true)
	A.DeclareShell(1, "D", 0)
	A.DeclareShell(1, "F", 0)
	A.DeclareShell(2, "D", 0)
	if n := A.RetypeShells(DC, DS); n != 2 {
		Te.Errorf("%d shells retyped", n)
	}
	M, _ := A.MOData()
	if M.BasisCount() != 5+10+5 {
		Te.Errorf("basis count %d", M.BasisCount())
	}
	p := A.BeginOrbital()
	A.EndOrbital(p, 0, 0, "", NoSpin)
	if A.RetypeShells(FC, FS) != 0 {
		Te.Error("shells retyped after an orbital")
	}
}

func TestHighL(Te *testing.T) {
	A := quietAssembler(true)
	A.DeclareShell(1, "G", 0)
	A.EnableHighL(GC)
	A.EnableHighL(GC)
	A.EnableHighL(DC)
	M, _ := A.MOData()
	if len(M.HighL) != 1 || !M.HighLEnabled(GC) || M.HighLEnabled(HC) || !M.HighLEnabled(DC) {
		Te.Errorf("wrong high-L set %v", M.HighL)
	}
}

func TestSlatersOnce(Te *testing.T) {
	A := quietAssembler(false)
	A.AddSlater(1, 0, 0, 0, 0, 1, 2, 1)
	A.AddSlater(1, 1, 0, 0, 0, 1, 3)
	if err := A.FinalizeSlaters(); err != nil {
		Te.Fatal(err)
	}
	if err := A.FinalizeSlaters(); message(err) != AlreadyNormalized {
		Te.Errorf("second normalization not rejected: %v", err)
	}
	if i := A.AddSlater(1, 0, 0, 0, 0, 1, 2); i != -1 {
		Te.Error("function added after normalization")
	}
	p := A.BeginOrbital()
	p.Append(0.5)
	p.Append(0.25)
	A.EndOrbital(p, -0.3, 2, "", NoSpin)
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	invsqpi := 1 / math.Sqrt(math.Pi)
	if !M.Normalized || len(M.Slaters) != 2 {
		Te.Fatal("model not normalized")
	}
	if !scalar.EqualWithinAbs(M.Slaters[0].Coef, 2*invsqpi, tol) || !scalar.EqualWithinAbs(M.Slaters[1].Coef, 3*invsqpi, tol) {
		Te.Errorf("coefficients %g %g", M.Slaters[0].Coef, M.Slaters[1].Coef)
	}
	//MOData doesn't normalize again
	M, _ = A.MOData()
	if !scalar.EqualWithinAbs(M.Slaters[0].Coef, 2*invsqpi, tol) {
		Te.Error("coefficients scaled twice")
	}
	if !floats.Equal(M.Orbitals[0].Coefficients, []float64{0.5, 0.25}) {
		Te.Errorf("Slater orbital changed %v", M.Orbitals[0].Coefficients)
	}
}

func TestSlatersUnsupported(Te *testing.T) {
	A := quietAssembler(true)
	A.AddSlater(1, Sph2, 0, 1, 0, 1, 2)
	A.AddSlater(1, 0, 0, 0, 0, 1, 2)
	if err := A.FinalizeSlaters(); message(err) != UnsupportedNormalization {
		Te.Errorf("wrong error %v", err)
	}
	M, _ := A.MOData()
	if M.Slaters[0].Coef != 0 || M.Slaters[1].Coef == 0 {
		Te.Errorf("got %v", M.Slaters)
	}
}

func TestZeroOptions(Te *testing.T) {
	A := NewAssembler(&Options{CalculationType: "AM1", Logger: log.New(io.Discard, "", 0), AllowNoOrbitals: true})
	A.AddSlater(1, 0, 0, 0, 0, 1, 1)
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if !scalar.EqualWithinAbs(M.Slaters[0].Coef, 1/math.Sqrt(math.Pi), tol) {
		Te.Errorf("Slater coefficient not scaled: %g", M.Slaters[0].Coef)
	}
}

func TestSlatersPreNormalized(Te *testing.T) {
	o := new(Options)
	o.SetDefaults()
	o.Logger = log.New(io.Discard, "", 0)
	o.SkipSlaterScaling = true
	o.SortSlaters = true
	A := NewAssembler(o)
	for i, atom := range []int{2, 1, 2, 1} {
		A.AddSlater(atom, 0, 0, 0, 0, 1, float64(i+1))
	}
	A.AddSphericalSlater(3, 6, "Pz", -1.2, 7)
	if A.AddSphericalSlater(3, 6, "Dxy", 1, 1) == nil {
		Te.Error("d function on C accepted")
	}
	p := A.BeginOrbital()
	for _, v := range []float64{1, 2, 3, 4} {
		p.Append(v)
	}
	A.EndOrbital(p, 0, 0, "", NoSpin)
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if M.Slaters[0].Coef != 1 || M.Slaters[4].Coef != 7 || !M.Normalized {
		Te.Error("coefficients should not be scaled")
	}
	//there is a contracted function, so nothing gets sorted.
	if M.Slaters[0].Atom != 2 || len(M.Problems) == 0 {
		Te.Error("Slater functions with contractions sorted")
	}
	if M.BasisCount() != 4 {
		Te.Errorf("basis count %d", M.BasisCount())
	}
}

func TestSlatersSorted(Te *testing.T) {
	o := new(Options)
	o.SetDefaults()
	o.Logger = log.New(io.Discard, "", 0)
	o.SkipSlaterScaling = true
	o.SortSlaters = true
	A := NewAssembler(o)
	for i, atom := range []int{2, 1, 2, 1} {
		A.AddSlater(atom, 0, 0, 0, 0, 1, float64(i+1))
	}
	p := A.BeginOrbital()
	for _, v := range []float64{1, 2, 3, 4} {
		p.Append(v)
	}
	A.EndOrbital(p, 0, 0, "", NoSpin)
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	for i, idx := range []int{1, 3, 0, 2} {
		if M.Slaters[i].Index != idx {
			Te.Errorf("function %d is %d, expected %d", i, M.Slaters[i].Index, idx)
		}
	}
	if !floats.Equal(M.Orbitals[0].Coefficients, []float64{2, 4, 1, 3}) {
		Te.Errorf("got %v", M.Orbitals[0].Coefficients)
	}
}

func TestSortedModel(Te *testing.T) {
	o := new(Options)
	o.SetDefaults()
	o.Logger = log.New(io.Discard, "", 0)
	o.SortByEnergy = true
	o.CalculationType = "RHF"
	o.EnergyUnits = "a.u."
	A := NewAssembler(o)
	A.DeclareShell(1, "S", 0)
	for _, e := range []float64{0.3, math.NaN(), -0.5} {
		p := A.BeginOrbital()
		p.Append(e)
		A.EndOrbital(p, e, math.NaN(), "", NoSpin)
	}
	M, err := A.MOData()
	if err != nil {
		Te.Fatal(err)
	}
	if M.CalculationType != "RHF" || M.EnergyUnits != "a.u." {
		Te.Error("labels lost")
	}
	for i, idx := range []int{2, 0, 1} {
		if M.Orbitals[i].Index != idx {
			Te.Errorf("orbital %d is %d, expected %d", i, M.Orbitals[i].Index, idx)
		}
	}
}
