/*
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package moplot draws orbital energy-level diagrams with gonum/plot.
package moplot

import (
	"fmt"
	"image/color"
	"math"

	mo "github.com/rmera/gomo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	occupiedColor = color.RGBA{R: 0, G: 0, B: 200, A: 255}
	virtualColor  = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	frontierColor = color.RGBA{R: 0, G: 150, B: 0, A: 255}
)

//half the width of a level
const halfWidth = 0.35

//Range returns the lowest and highest energies among the orbitals.
//Both are NaN if no orbital has an energy.
func Range(orbitals []*mo.Orbital) (float64, float64) {
	e := energies(orbitals)
	if len(e) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(e), floats.Max(e)
}

func energies(orbitals []*mo.Orbital) []float64 {
	ret := make([]float64, 0, len(orbitals))
	for _, o := range orbitals {
		if o.HasEnergy() {
			ret = append(ret, o.Energy)
		}
	}
	return ret
}

//column returns the orbitals with energy of the given spin channel (alpha and
//spinless orbitals go together), sorted by energy.
func column(orbitals []*mo.Orbital, beta bool) []*mo.Orbital {
	var ret []*mo.Orbital
	for _, o := range orbitals {
		if o.HasEnergy() && (o.Spin == mo.Beta) == beta {
			ret = append(ret, o)
		}
	}
	mo.SortByEnergy(ret)
	return ret
}

func basicLevelPlot(title string, lo, hi float64) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.Y.Label.Text = "Energy"
	p.X.Min = -0.5
	p.X.Max = 1.5
	margin := 0.05 * (hi - lo)
	if margin == 0 {
		margin = 0.1
	}
	p.Y.Min = lo - margin
	p.Y.Max = hi + margin
	p.NominalX("alpha", "beta")
	p.Add(plotter.NewGrid())
	return p
}

//level returns a horizontal segment at energy e in column x.
func level(x, e float64, c color.Color, width vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x - halfWidth, Y: e}, {X: x + halfWidth, Y: e}})
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = width
	return l, nil
}

//EnergyLevels draws the energy levels of the orbitals that have an energy,
//alpha (and spinless) orbitals on the left, beta on the right. Occupied levels
//are blue, virtual ones red, and the HOMO and LUMO of each column are green.
//The format of the file is given by the extension of filename (png, svg, pdf...).
func EnergyLevels(orbitals []*mo.Orbital, title, filename string) error {
	lo, hi := Range(orbitals)
	if math.IsNaN(lo) {
		return Error{NoEnergies, filename, []string{"EnergyLevels"}, true}
	}
	p := basicLevelPlot(title, lo, hi)
	var occ, virt *plotter.Line
	for x, beta := range []bool{false, true} {
		col := column(orbitals, beta)
		homo, lumo := mo.HOMO(col), mo.LUMO(col)
		for i, o := range col {
			c, w := virtualColor, vg.Points(1)
			if o.Occupied() {
				c = occupiedColor
			}
			if i == homo || i == lumo {
				c, w = frontierColor, vg.Points(2.5)
			}
			l, err := level(float64(x), o.Energy, c, w)
			if err != nil {
				return Error{PlotError + ": " + err.Error(), filename, []string{"level", "EnergyLevels"}, true}
			}
			p.Add(l)
			switch {
			case c == occupiedColor && occ == nil:
				occ = l
			case c == virtualColor && virt == nil:
				virt = l
			}
		}
	}
	if occ != nil {
		p.Legend.Add("occupied", occ)
	}
	if virt != nil {
		p.Legend.Add("virtual", virt)
	}
	p.Legend.Top = true
	if err := p.Save(4*vg.Inch, 6*vg.Inch, filename); err != nil {
		return Error{PlotError + ": " + err.Error(), filename, []string{"EnergyLevels"}, true}
	}
	return nil
}

//Error is the error type of this package.
type Error struct {
	message  string
	filename string //the plot file, or an empty string.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("moplot error: %s", err.message)
	}
	return fmt.Sprintf("moplot error for %s: %s", err.filename, err.message)
}

//FileName returns the name of the plot file associated to the error, if any.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	NoEnergies = "No orbital has an energy"
	PlotError  = "Unable to draw the plot"
)
