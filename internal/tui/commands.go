package tui

import (
	"context"
	"encoding/json"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linescope/linescope/internal/engine/events"
	"github.com/linescope/linescope/internal/engine/types"
	"github.com/linescope/linescope/internal/source"
	"github.com/linescope/linescope/internal/utils"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// watchFailedMsg reports that the source could not be watched.
type watchFailedMsg struct {
	err error
}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	id  string
	err error
}

func loadCmd(ctx context.Context, src string, opts source.Options) tea.Cmd {
	return func() tea.Msg {
		ds, err := source.Load(ctx, src, opts)
		if err != nil {
			return events.DataErrorMsg{Source: src, Err: err}
		}
		return events.DataLoadedMsg{Source: src, Dataset: ds, LoadedAt: time.Now()}
	}
}

func listenForActivity(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// watchCmd blocks on the file watcher until ctx ends. Changes are posted to
// sub so they reach Update through listenForActivity.
func watchCmd(ctx context.Context, path string, debounce time.Duration, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		err := source.Watch(ctx, path, debounce, func() {
			select {
			case sub <- events.SourceChangedMsg{Source: path}:
			default:
				utils.Debug("tui: change of %s dropped, reload already pending", path)
			}
		})
		if err != nil {
			return watchFailedMsg{err: err}
		}
		return nil
	}
}

func copyRecordCmd(rec types.Record) tea.Cmd {
	return func() tea.Msg {
		data, err := json.Marshal(rec)
		if err != nil {
			return copiedMsg{id: rec.ID, err: err}
		}
		return copiedMsg{id: rec.ID, err: writeClipboard(string(data))}
	}
}
