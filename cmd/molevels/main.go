/*
 * main.go, part of gomo.
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

//molevels reads an orbital snapshot, prints the orbitals around the
//HOMO-LUMO gap and draws the energy-level diagram.
//
//	molevels [-o levels.png] [-title T] [-n 2] snapshot.zst
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	mo "github.com/rmera/gomo"
	"github.com/rmera/gomo/moplot"
	"github.com/rmera/gomo/mosnap"
)

//frontier returns the range [from,to) of orbitals from n below the HOMO to n above the LUMO.
func frontier(orbitals []*mo.Orbital, n int) (int, int) {
	homo, lumo := mo.HOMO(orbitals), mo.LUMO(orbitals)
	if homo < 0 && lumo < 0 {
		return 0, 0
	}
	if homo < 0 {
		homo = lumo - 1
	}
	if lumo < 0 {
		lumo = homo + 1
	}
	from, to := homo-n, lumo+n+1
	if from < 0 {
		from = 0
	}
	if to > len(orbitals) {
		to = len(orbitals)
	}
	return from, to
}

//label returns "HOMO-k", "HOMO", "LUMO" or "LUMO+k" for orbital i.
func label(i, homo, lumo int) string {
	switch {
	case i == homo:
		return "HOMO"
	case i == lumo:
		return "LUMO"
	case homo >= 0 && i < homo:
		return fmt.Sprintf("HOMO-%d", homo-i)
	case lumo >= 0 && i > lumo:
		return fmt.Sprintf("LUMO+%d", i-lumo)
	}
	return ""
}

//table writes the frontier orbitals of the model, one per line.
func table(w io.Writer, M *mo.MOData, n int) {
	var orbs []*mo.Orbital
	for _, o := range M.Orbitals {
		if o.HasEnergy() {
			orbs = append(orbs, o)
		}
	}
	mo.SortByEnergy(orbs)
	homo, lumo := mo.HOMO(orbs), mo.LUMO(orbs)
	from, to := frontier(orbs, n)
	units := M.EnergyUnits
	if units == "" {
		units = "?"
	}
	fmt.Fprintf(w, "%-8s %6s %14s %6s %6s %s\n", "", "MO", "E ("+units+")", "occ", "spin", "sym")
	for i := to - 1; i >= from; i-- {
		o := orbs[i]
		occ := "-"
		if o.HasOccupancy() {
			occ = fmt.Sprintf("%.2f", o.Occupancy)
		}
		fmt.Fprintf(w, "%-8s %6d %14.6f %6s %6s %s\n", label(i, homo, lumo), o.Index+1, o.Energy, occ, o.Spin, o.Symmetry)
	}
	if homo >= 0 && lumo >= 0 {
		fmt.Fprintf(w, "HOMO-LUMO gap: %.6f %s\n", orbs[lumo].Energy-orbs[homo].Energy, units)
	}
}

func main() {
	log.SetPrefix("molevels: ")
	log.SetFlags(0)
	output := flag.String("o", "", "file for the energy-level diagram. The format is given by the extension. Default: the snapshot name with a .png extension")
	title := flag.String("title", "", "title for the diagram. Default: the snapshot name")
	n := flag.Int("n", 2, "number of orbitals to print below the HOMO and above the LUMO")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] snapshot\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	name := flag.Arg(0)
	M, err := mosnap.Read(name)
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range M.Problems {
		log.Print(p)
	}
	if !M.OrbitalsAvailable || len(M.Orbitals) == 0 {
		log.Fatalf("%s has no usable orbitals", name)
	}
	fmt.Printf("%s: %d orbitals, %d basis functions", name, len(M.Orbitals), M.BasisCount())
	if M.CalculationType != "" {
		fmt.Printf(", %s", M.CalculationType)
	}
	fmt.Println()
	table(os.Stdout, M, *n)
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if *output == "" {
		*output = base + ".png"
	}
	if *title == "" {
		*title = base
	}
	if err := moplot.EnergyLevels(M.Orbitals, *title, *output); err != nil {
		log.Fatal(err)
	}
}
