package render

import (
	"encoding/json"
	"io"

	"github.com/linescope/linescope/internal/engine"
	"github.com/linescope/linescope/internal/engine/scale"
	"github.com/linescope/linescope/internal/engine/types"
)

type tickJSON struct {
	Value    string  `json:"value"`
	Position float64 `json:"position"`
	Label    string  `json:"label"`
}

type axisJSON struct {
	Key    string     `json:"key"`
	Kind   string     `json:"kind"`
	Domain []string   `json:"domain"`
	Range  [2]float64 `json:"range"`
	Labels []string   `json:"labels"`
	Ticks  []tickJSON `json:"ticks"`
}

type bisectorJSON struct {
	State  string  `json:"state"`
	Series int     `json:"series"`
	Active bool    `json:"active"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Index  int     `json:"index"`
}

type frameJSON struct {
	engine.Frame
	XAxis    axisJSON     `json:"x_axis"`
	YAxis    axisJSON     `json:"y_axis"`
	Bisector bisectorJSON `json:"bisector"`
	Error    string       `json:"error,omitempty"`
}

func axis(r scale.Result, ticks []types.Tick) axisJSON {
	a := axisJSON{Key: r.Key, Domain: []string{}, Labels: tickLabels(ticks), Ticks: make([]tickJSON, len(ticks))}
	if r.Scale != nil {
		a.Kind = r.Scale.Kind().String()
		a.Range = r.Scale.Range()
		for _, d := range r.Scale.Domain() {
			a.Domain = append(a.Domain, d.String())
		}
	}
	for i, t := range ticks {
		a.Ticks[i] = tickJSON{Value: t.Value.String(), Position: t.Position, Label: t.Label}
	}
	return a
}

// JSON writes f as an indented JSON document.
func JSON(w io.Writer, f engine.Frame) error {
	out := frameJSON{
		Frame: f,
		XAxis: axis(f.X, f.XTicks),
		YAxis: axis(f.Y, f.YTicks),
		Bisector: bisectorJSON{
			State:  f.State.String(),
			Series: f.Bisector.Series,
			Active: f.Bisector.Active,
			X:      f.Bisector.X,
			Y:      f.Bisector.Y,
			Index:  f.Bisector.Index,
		},
	}
	if f.Err != nil {
		out.Error = f.Err.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
