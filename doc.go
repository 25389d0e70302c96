/*
 * doc.go, part of gomo.
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

/*Package mo is the basis-set and molecular orbital core shared by the readers of
quantum chemistry output. A reader (a "scanner") tells an Assembler about the shells,
primitives and orbitals it finds, in whatever order and with whatever function
ordering the program uses, and gets back an MOData with every orbital in one
canonical order, ready for an orbital evaluator.


	**gomo Capabilities**


    Recognizes the shell type tags and function labels of the common programs
	(S, SP/L, 5D/6D, 7F/10F, up to I functions; XX, DXY, (D6), d1+...).

    Builds, from the labels a program prints, the permutation that takes each shell
	to the canonical order, and applies it to every orbital. The maps are kept per model,
	and a failed map disables the orbitals of its model instead of silently
	using a wrong order.

    Normalizes Slater-type functions, including the principal quantum numbers used by the
	semi-empirical methods (AM1, PM3, PM6...) and the spherical d functions of MOPAC.
	Each model is normalized exactly once.

    Sorts orbitals by energy and coefficients by atom, and finds the HOMO and LUMO.

    Saves and loads the finished orbital sets as compressed snapshots (package mosnap)
	and draws energy-level diagrams (package moplot).

The canonical orders are given by ShellType.Canonical. Cartesian D functions, for instance,
are XX YY ZZ XY XZ YZ.
*/
package mo
