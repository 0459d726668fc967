// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the remote UI
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jukebox-Protocol/jukebox-go/pkg/protocol"
)

// Run starts the TUI against the given client, feeding it snapshots
// from the daemon's status channel until the program exits.
func Run(ctx context.Context, client *protocol.Client) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(client), tea.WithAltScreen())

	go func() {
		for status := range client.WatchStatus(ctx) {
			p.Send(StatusMsg(status))
		}
	}()

	_, err := p.Run()
	return err
}
