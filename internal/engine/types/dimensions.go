package types

// Margins are the gaps between the outer chart box and the plotting area.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Dimensions describes the outer chart box and, once resolved, the interior
// plotting area.
type Dimensions struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Margins       Margins `json:"margins"`
	BoundedWidth  float64 `json:"bounded_width,omitempty"`
	BoundedHeight float64 `json:"bounded_height,omitempty"`
}

// Resolve returns d with the bounded sizes filled in. Pre-bounded dimensions
// are returned untouched. Margins wider than the box give negative bounded
// sizes; those are kept so renderers can treat the area as empty.
func (d Dimensions) Resolve() Dimensions {
	if d.BoundedWidth != 0 && d.BoundedHeight != 0 {
		return d
	}
	d.BoundedWidth = d.Width - d.Margins.Left - d.Margins.Right
	d.BoundedHeight = d.Height - d.Margins.Top - d.Margins.Bottom
	return d
}

// Degenerate reports whether the plotting area has no drawable surface.
func (d Dimensions) Degenerate() bool {
	r := d.Resolve()
	return r.BoundedWidth <= 0 || r.BoundedHeight <= 0
}
