/*
 * mosnap.go, part of gomo.
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

//Package mosnap saves and loads finished orbital sets (mo.MOData), so an
//orbital evaluator can run in another process, or later. A snapshot is a JSON
//document, compressed according to the file name: .gz files are gzip-compressed,
//.json files are not compressed, and anything else (.zst is the customary
//extension) is compressed with zstd.
package mosnap

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	mo "github.com/rmera/gomo"
)

//Version of the snapshot format written by this package.
const Version = 1

type shell struct {
	Atom  int
	Type  string
	First int
	Count int
	Valid bool
}

type orbital struct {
	Coefficients []float64
	Energy       *float64 `json:",omitempty"` //JSON has no NaN
	Occupancy    *float64 `json:",omitempty"`
	Symmetry     string   `json:",omitempty"`
	Spin         string   `json:",omitempty"`
	Index        int
}

type snapshot struct {
	Version           int
	CalculationType   string `json:",omitempty"`
	EnergyUnits       string `json:",omitempty"`
	Shells            []shell
	Gaussians         []mo.Gaussian
	Slaters           []mo.SlaterFunction
	Orbitals          []orbital
	OrbitalsAvailable bool
	Normalized        bool
	HighL             []string
	Problems          []string
}

func optional(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func fromOptional(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

func toSnapshot(m *mo.MOData) *snapshot {
	s := &snapshot{
		Version:           Version,
		CalculationType:   m.CalculationType,
		EnergyUnits:       m.EnergyUnits,
		Gaussians:         m.Gaussians,
		Slaters:           m.Slaters,
		OrbitalsAvailable: m.OrbitalsAvailable,
		Normalized:        m.Normalized,
		Problems:          m.Problems,
	}
	for _, v := range m.Shells {
		s.Shells = append(s.Shells, shell{Atom: v.Atom, Type: v.Type.String(), First: v.First, Count: v.Count, Valid: v.Valid})
	}
	for _, t := range m.HighL {
		s.HighL = append(s.HighL, t.String())
	}
	for _, o := range m.Orbitals {
		s.Orbitals = append(s.Orbitals, orbital{
			Coefficients: o.Coefficients,
			Energy:       optional(o.Energy),
			Occupancy:    optional(o.Occupancy),
			Symmetry:     o.Symmetry,
			Spin:         o.Spin.String(),
			Index:        o.Index,
		})
	}
	return s
}

func shellType(tag string) (mo.ShellType, error) {
	t, ok := mo.ShellTypeOf(tag)
	if !ok {
		return t, Error{fmt.Sprintf("%s %q", UnknownShell, tag), "", []string{"shellType"}, true}
	}
	return t, nil
}

func fromSnapshot(s *snapshot) (*mo.MOData, error) {
	if s.Version != Version {
		return nil, Error{fmt.Sprintf("%s: %d, expected %d", BadVersion, s.Version, Version), "", []string{"fromSnapshot"}, true}
	}
	m := &mo.MOData{
		CalculationType:   s.CalculationType,
		EnergyUnits:       s.EnergyUnits,
		Gaussians:         s.Gaussians,
		Slaters:           s.Slaters,
		OrbitalsAvailable: s.OrbitalsAvailable,
		Normalized:        s.Normalized,
		Problems:          s.Problems,
	}
	for _, v := range s.Shells {
		t, err := shellType(v.Type)
		if err != nil {
			return nil, errDecorate(err, "fromSnapshot")
		}
		m.Shells = append(m.Shells, mo.Shell{Atom: v.Atom, Type: t, First: v.First, Count: v.Count, Valid: v.Valid})
	}
	for _, v := range s.HighL {
		t, err := shellType(v)
		if err != nil {
			return nil, errDecorate(err, "fromSnapshot")
		}
		m.HighL = append(m.HighL, t)
	}
	for _, o := range s.Orbitals {
		m.Orbitals = append(m.Orbitals, &mo.Orbital{
			Coefficients: o.Coefficients,
			Energy:       fromOptional(o.Energy),
			Occupancy:    fromOptional(o.Occupancy),
			Symmetry:     o.Symmetry,
			Spin:         mo.SpinOf(o.Spin),
			Index:        o.Index,
		})
	}
	return m, nil
}

//Encode writes m to w as an uncompressed JSON snapshot.
func Encode(w io.Writer, m *mo.MOData) error {
	if m == nil {
		return Error{NilData, "", []string{"Encode"}, true}
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(toSnapshot(m)); err != nil {
		return Error{WriteError + ": " + err.Error(), "", []string{"Encode"}, true}
	}
	return nil
}

//Decode reads an uncompressed JSON snapshot from r.
func Decode(r io.Reader) (*mo.MOData, error) {
	s := new(snapshot)
	dec := json.NewDecoder(r)
	if err := dec.Decode(s); err != nil {
		return nil, Error{ReadError + ": " + err.Error(), "", []string{"Decode"}, true}
	}
	m, err := fromSnapshot(s)
	if err != nil {
		return nil, errDecorate(err, "Decode")
	}
	return m, nil
}

//compression returns 'z' for zstd, 'g' for gzip and 'j' for plain JSON,
//depending on the extension of name.
func compression(name string) byte {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return 'g'
	case ".json":
		return 'j'
	default:
		return 'z'
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (n nopWriteCloser) Close() error { return nil }

//*zstd.Decoder's Close doesn't return an error, so it is not an io.ReadCloser
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//Write saves m to the file name. The optional level is the compression level,
//from 1 to 9 for gzip, and 1 to 22 (as the zstd program) for zstd.
func Write(name string, m *mo.MOData, level ...int) error {
	f, err := os.Create(name)
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), name, []string{"Write"}, true}
	}
	defer f.Close()
	var h io.WriteCloser
	switch compression(name) {
	case 'g':
		l := gzip.BestCompression
		if len(level) > 0 {
			l = level[0]
		}
		h, err = gzip.NewWriterLevel(f, l)
	case 'j':
		h = nopWriteCloser{f}
	default:
		l := zstd.SpeedBestCompression
		if len(level) > 0 {
			l = zstd.EncoderLevelFromZstd(level[0])
		}
		h, err = zstd.NewWriter(f, zstd.WithEncoderLevel(l))
	}
	if err != nil {
		return Error{WriteError + ": " + err.Error(), name, []string{"Write"}, true}
	}
	if err = Encode(h, m); err != nil {
		h.Close()
		err2 := errDecorate(err, "Write").(Error)
		err2.filename = name
		return err2
	}
	if err = h.Close(); err != nil {
		return Error{WriteError + ": " + err.Error(), name, []string{"Write"}, true}
	}
	if err = f.Close(); err != nil {
		return Error{WriteError + ": " + err.Error(), name, []string{"Write"}, true}
	}
	return nil
}

//Read loads the snapshot in the file name.
func Read(name string) (*mo.MOData, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Read"}, true}
	}
	defer f.Close()
	intermediate := bufio.NewReader(f)
	var h io.ReadCloser
	switch compression(name) {
	case 'g':
		h, err = gzip.NewReader(intermediate)
	case 'j':
		h = io.NopCloser(intermediate)
	default:
		var d *zstd.Decoder
		d, err = zstd.NewReader(intermediate)
		if err == nil {
			h = zstdReadCloser{d}
		}
	}
	if err != nil {
		return nil, Error{ReadError + ": " + err.Error(), name, []string{"Read"}, true}
	}
	defer h.Close()
	m, err := Decode(h)
	if err != nil {
		err2 := errDecorate(err, "Read").(Error)
		err2.filename = name
		return nil, err2
	}
	return m, nil
}

//Error is the error type of this package.
type Error struct {
	message  string
	filename string //the file with problems, or an empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("mosnap error: %s", err.message)
	}
	return fmt.Sprintf("mosnap file %s error: %s", err.filename, err.message)
}

//Decorate returns a copy of the error with deco added to its decoration.
func (err Error) Decorate(deco string) Error {
	if deco == "" {
		return err
	}
	d := make([]string, len(err.deco), len(err.deco)+1)
	copy(d, err.deco)
	err.deco = append(d, deco)
	return err
}

//Trace returns the functions the error went through, innermost first.
func (err Error) Trace() string { return strings.Join(err.deco, " <- ") }

//FileName returns the name of the file associated to the error, if any.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		return err2.Decorate(caller)
	}
	return err
}

const (
	UnableToOpen = "Unable to open file"
	ReadError    = "Error reading snapshot"
	WriteError   = "Error writing snapshot"
	BadVersion   = "Unsupported snapshot version"
	UnknownShell = "Unknown shell type"
	NilData      = "Given nil data"
)
