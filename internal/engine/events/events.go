package events

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/linescope/linescope/internal/engine/types"
)

// SelectLineMsg is a click on series Series at outer-box pixel X.
type SelectLineMsg struct {
	Series int
	X      float64
}

// PointerMoveMsg is a pointer movement to outer-box pixel X.
type PointerMoveMsg struct {
	X float64
}

// ResetBisectorMsg clears the current selection
type ResetBisectorMsg struct{}

// ToggleSeriesMsg shows or hides one series.
type ToggleSeriesMsg struct {
	Series  int
	Visible bool
}

// ResizeMsg changes the outer chart box.
type ResizeMsg struct {
	Width  float64
	Height float64
}

// DataLoadedMsg delivers a freshly loaded dataset
type DataLoadedMsg struct {
	Source   string
	Dataset  types.Dataset
	LoadedAt time.Time
}

// DataErrorMsg signals that loading a source failed
type DataErrorMsg struct {
	Source string
	Err    error
}

func (m DataErrorMsg) MarshalJSON() ([]byte, error) {
	type encoded struct {
		Source string `json:"Source"`
		Err    string `json:"Err,omitempty"`
	}

	out := encoded{Source: m.Source}
	if m.Err != nil {
		out.Err = m.Err.Error()
	}

	return json.Marshal(out)
}

func (m *DataErrorMsg) UnmarshalJSON(data []byte) error {
	var aux struct {
		Source string          `json:"Source"`
		Err    json.RawMessage `json:"Err"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	m.Source = aux.Source
	m.Err = nil

	if len(aux.Err) == 0 {
		return nil
	}

	var errStr string
	if err := json.Unmarshal(aux.Err, &errStr); err == nil {
		if errStr != "" {
			m.Err = errors.New(errStr)
		}
		return nil
	}

	// Accept non-string payloads (e.g. {}).
	raw := string(aux.Err)
	if raw != "" && raw != "null" {
		m.Err = errors.New(raw)
	}
	return nil
}

// SourceChangedMsg is sent when a watched source changes on disk
type SourceChangedMsg struct {
	Source string
}
