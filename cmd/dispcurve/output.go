package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/katalvlaran/surfwave/dispersion"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"
)

// curveDoc is the YAML form of a computed curve.
type curveDoc struct {
	Model  string     `yaml:"model,omitempty"`
	Points []pointDoc `yaml:"points"`
}

type pointDoc struct {
	Frequency   float64 `yaml:"frequency"`
	Velocity    float64 `yaml:"velocity"`
	Evaluations int     `yaml:"evaluations"`
	Passes      int     `yaml:"passes"`
	Exact       bool    `yaml:"exact,omitempty"`
}

func writeYAML(w io.Writer, name string, sols []dispersion.Solution) error {
	doc := curveDoc{Model: name, Points: make([]pointDoc, len(sols))}
	for i, s := range sols {
		doc.Points[i] = pointDoc{
			Frequency:   s.Frequency,
			Velocity:    s.Velocity,
			Evaluations: s.Evaluations,
			Passes:      s.Iterations,
			Exact:       s.ExactHit,
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("dispcurve: encode: %w", err)
	}

	return enc.Close()
}

func writeTable(w io.Writer, sols []dispersion.Solution) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FREQ_HZ\tVELOCITY\tBRACKET\tEVALS\tPASSES")
	for _, s := range sols {
		fmt.Fprintf(tw, "%g\t%.4f\t[%.1f, %.1f]\t%d\t%d\n",
			s.Frequency, s.Velocity, s.Bracket[0], s.Bracket[1], s.Evaluations, s.Iterations)
	}

	return tw.Flush()
}

func writeCSV(w io.Writer, sols []dispersion.Solution) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"frequency_hz", "velocity", "evaluations", "passes"}); err != nil {
		return fmt.Errorf("dispcurve: write csv header: %w", err)
	}
	for i, s := range sols {
		err := cw.Write([]string{
			strconv.FormatFloat(s.Frequency, 'g', -1, 64),
			strconv.FormatFloat(s.Velocity, 'f', 6, 64),
			strconv.Itoa(s.Evaluations),
			strconv.Itoa(s.Iterations),
		})
		if err != nil {
			return fmt.Errorf("dispcurve: write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("dispcurve: flush csv: %w", err)
	}

	return nil
}

// savePlot draws velocity against frequency; the file extension picks the format.
func savePlot(path, name string, sols []dispersion.Solution) error {
	pts := make(plotter.XYs, len(sols))
	for i, s := range sols {
		pts[i] = plotter.XY{X: s.Frequency, Y: s.Velocity}
	}

	p := plot.New()
	p.Title.Text = "Rayleigh fundamental mode"
	if name != "" {
		p.Title.Text += " – " + name
	}
	p.X.Label.Text = "frequency (Hz)"
	p.Y.Label.Text = "phase velocity"
	if err := plotutil.AddLinePoints(p, "c(f)", pts); err != nil {
		return fmt.Errorf("dispcurve: plot: %w", err)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("dispcurve: save plot: %w", err)
	}

	return nil
}
