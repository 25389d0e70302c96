/*
 * permutation.go, part of gomo.
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
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

//PermutationMap takes the coefficients of one shell from the order
//a program prints them to the canonical order. At(i) is the
//vendor-order slot of the function that goes in canonical position i.
type PermutationMap struct {
	t    ShellType
	perm []int
}

//IdentityMap returns the map for a vendor that already uses the canonical order.
func IdentityMap(t ShellType) *PermutationMap {
	perm := make([]int, t.Len())
	for i := range perm {
		perm[i] = i
	}
	return &PermutationMap{t: t, perm: perm}
}

//Type returns the shell type the map was built for.
func (p *PermutationMap) Type() ShellType { return p.t }

//Len returns the number of functions in the map, always p.Type().Len().
func (p *PermutationMap) Len() int { return len(p.perm) }

//At returns the vendor slot for the canonical position i.
func (p *PermutationMap) At(i int) int { return p.perm[i] }

//Perm returns a copy of the permutation.
func (p *PermutationMap) Perm() []int {
	ret := make([]int, len(p.perm))
	copy(ret, p.perm)
	return ret
}

//Identity returns true if the map doesn't change the order.
func (p *PermutationMap) Identity() bool {
	for i, v := range p.perm {
		if i != v {
			return false
		}
	}
	return true
}

//Apply puts in dst[i] the value vendor[p.At(i)]. Slots that fall beyond the end of
//vendor are set to zero. dst must have at least p.Len() elements.
func (p *PermutationMap) Apply(dst, vendor []float64) {
	for i, j := range p.perm {
		if j < len(vendor) {
			dst[i] = vendor[j]
		} else {
			dst[i] = 0
		}
	}
}

//ParseLabels splits a line of function labels, such as "DXX DYY DZZ DXY DXZ DYZ".
func ParseLabels(s string) []string {
	return strings.Fields(s)
}

//normalizeLabel brings a function label to the form used for comparisons:
//upper case, no whitespace or parentheses, no family letter in front of a cartesian
//label, and the x, y, z letters of cartesian labels sorted (YYX -> XYY).
func normalizeLabel(label string) string {
	t := cleanTag(label)
	if len(t) > 1 && strings.IndexByte(families, t[0]) >= 0 && isXYZ(t[1:]) {
		t = t[1:]
	}
	if isXYZ(t) {
		b := []byte(t)
		sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
		t = string(b)
	}
	return t
}

//BuildMap builds the permutation from the vendor order given in vendorLabels to the
//canonical order of t. Labels are compared upper-cased, without whitespace or
//parentheses, so "dxx", "DXX", "(D 1)" and "D1" are all fine, and the letters of
//cartesian labels may come in any order ("YYX" is "XYY"). Each label, as given,
//must be at least minLabelLength characters wide.
func BuildMap(t ShellType, vendorLabels []string, minLabelLength int) (*PermutationMap, error) {
	m, err := BuildMapFrom(t, vendorLabels, t.Canonical(), minLabelLength)
	if err != nil {
		return nil, errDecorate(err, "BuildMap")
	}
	return m, nil
}

//BuildMapFrom is like BuildMap, but the canonical order is given by reference, a list of
//labels in the vendor's own vocabulary, written in canonical order
//(for instance "255 252 253 254 251" for the spherical d functions of GenNBO).
func BuildMapFrom(t ShellType, vendorLabels, reference []string, minLabelLength int) (*PermutationMap, error) {
	n := t.Len()
	if n == 0 {
		return nil, newError(UnknownShellType, t.String(), false, "BuildMapFrom")
	}
	if len(reference) != n {
		return nil, mismatch(t, fmt.Sprintf("%d reference labels for %d functions", len(reference), n), reference, vendorLabels)
	}
	if len(vendorLabels) != n {
		return nil, mismatch(t, fmt.Sprintf("%d vendor labels for %d functions", len(vendorLabels), n), reference, vendorLabels)
	}
	ref := make([]string, n)
	for i, v := range reference {
		ref[i] = normalizeLabel(v)
		if slices.Index(ref[:i], ref[i]) >= 0 {
			return nil, mismatch(t, fmt.Sprintf("repeated reference label %q", v), reference, vendorLabels)
		}
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = -1
	}
	for j, raw := range vendorLabels {
		if len(strings.TrimSpace(raw)) < minLabelLength {
			return nil, mismatch(t, fmt.Sprintf("label %q shorter than %d characters", raw, minLabelLength), reference, vendorLabels)
		}
		i := slices.Index(ref, normalizeLabel(raw))
		if i < 0 {
			return nil, mismatch(t, fmt.Sprintf("unknown label %q", raw), reference, vendorLabels)
		}
		if perm[i] >= 0 {
			return nil, mismatch(t, fmt.Sprintf("label %q used twice", raw), reference, vendorLabels)
		}
		perm[i] = j
	}
	return &PermutationMap{t: t, perm: perm}, nil
}

//mismatch builds the error for a failed map. The detail carries a
//unified diff of the reference labels against the vendor ones.
func mismatch(t ShellType, reason string, reference, vendor []string) Error {
	detail := fmt.Sprintf("shell type %s: %s", t, reason)
	u := difflib.UnifiedDiff{
		A:        labelLines(reference),
		B:        labelLines(vendor),
		FromFile: "canonical",
		ToFile:   "vendor",
		Context:  1,
	}
	if d, err := difflib.GetUnifiedDiffString(u); err == nil && d != "" {
		detail += "\n" + d
	}
	return newError(PermutationMismatch, detail, true, "BuildMapFrom")
}

func labelLines(labels []string) []string {
	ret := make([]string, len(labels))
	for i, v := range labels {
		ret[i] = v + "\n"
	}
	return ret
}

//MapCache keeps the permutation maps built while reading one model.
//A failure for a shell type is kept until Reset, so a type can't be
//silently used with a half-built or stale map.
type MapCache struct {
	installed map[ShellType]*PermutationMap
	built     map[string]*PermutationMap
	failed    map[ShellType]error
}

//NewMapCache returns an empty cache.
func NewMapCache() *MapCache {
	C := new(MapCache)
	C.Reset()
	return C
}

//Reset drops every map and failure. It must be called when a new model starts.
func (C *MapCache) Reset() {
	C.installed = make(map[ShellType]*PermutationMap)
	C.built = make(map[string]*PermutationMap)
	C.failed = make(map[ShellType]error)
}

func cacheKey(t ShellType, labels, reference []string, minLabelLength int) string {
	return fmt.Sprintf("%s|%d|%s|%s", t, minLabelLength, strings.Join(reference, "\x00"), strings.Join(labels, "\x00"))
}

//Get returns the map for the vendor labels of shell type t, building it
//if needed, and installs it as the map to use for t.
func (C *MapCache) Get(t ShellType, labels []string, minLabelLength int) (*PermutationMap, error) {
	m, err := C.GetFrom(t, labels, t.Canonical(), minLabelLength)
	if err != nil {
		return nil, errDecorate(err, "MapCache.Get")
	}
	return m, nil
}

//GetFrom is like Get, with the canonical order given in the vendor's vocabulary
//(see BuildMapFrom).
func (C *MapCache) GetFrom(t ShellType, labels, reference []string, minLabelLength int) (*PermutationMap, error) {
	if err, ok := C.failed[t]; ok {
		return nil, err
	}
	key := cacheKey(t, labels, reference, minLabelLength)
	m, ok := C.built[key]
	if !ok {
		var err error
		m, err = BuildMapFrom(t, labels, reference, minLabelLength)
		if err != nil {
			C.failed[t] = err
			delete(C.installed, t)
			return nil, errDecorate(err, "MapCache.GetFrom")
		}
		C.built[key] = m
	}
	C.installed[t] = m
	return m, nil
}

//Lookup returns the map installed for t. The second value is false if no map is
//installed, or if building one failed.
func (C *MapCache) Lookup(t ShellType) (*PermutationMap, bool) {
	if _, ok := C.failed[t]; ok {
		return nil, false
	}
	m, ok := C.installed[t]
	return m, ok
}

//Failed returns the error with which building a map for t failed, or nil.
func (C *MapCache) Failed(t ShellType) error {
	return C.failed[t]
}

//FailedTypes returns the shell types with a failed map, in order.
func (C *MapCache) FailedTypes() []ShellType {
	ret := maps.Keys(C.failed)
	slices.Sort(ret)
	return ret
}

//Len returns the number of installed maps.
func (C *MapCache) Len() int {
	return len(C.installed)
}
