// ABOUTME: Entry point for the Jukebox remote controller
// ABOUTME: Runs the TUI, or sends a single command when given arguments
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Jukebox-Protocol/jukebox-go/internal/engine"
	"github.com/Jukebox-Protocol/jukebox-go/internal/ui"
	"github.com/Jukebox-Protocol/jukebox-go/pkg/protocol"
)

var (
	cmdPath    = flag.String("cmd", engine.DefaultCommandPath, "Command FIFO path")
	statusPath = flag.String("status", engine.DefaultStatusPath, "Status FIFO path")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] [command [arg]]

With no command, starts the interactive remote.

Commands:
  play <file>       Replace the playlist with one track and play it
  playlist <file>   Load a playlist file and play its first track
  queue <file>      Append a track to the playlist
  pause | resume | toggle | stop | next | prev
  seek <seconds>    Absolute, or relative with a +/- prefix
  vol <percent>     Absolute, or relative with a +/- prefix
  jump <index>      Play the playlist entry at index (zero-based)
  status            Ask the daemon for an immediate snapshot
  quit              Shut the daemon down

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	client := protocol.NewClient(*cmdPath, *statusPath)

	if flag.NArg() == 0 {
		if err := ui.Run(context.Background(), client); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}
		return
	}

	if err := runCommand(client, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(client *protocol.Client, name string, args []string) error {
	pathArg := func() (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("%s takes exactly one file argument", name)
		}
		return args[0], nil
	}
	numArg := func() (int, bool, error) {
		if len(args) != 1 {
			return 0, false, fmt.Errorf("%s takes exactly one numeric argument", name)
		}
		rel := len(args[0]) > 0 && (args[0][0] == '+' || args[0][0] == '-')
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, false, fmt.Errorf("bad number %q", args[0])
		}
		return n, rel, nil
	}
	bare := func(send func() error) error {
		if len(args) != 0 {
			return fmt.Errorf("%s takes no arguments", name)
		}
		return send()
	}

	switch name {
	case "play":
		path, err := pathArg()
		if err != nil {
			return err
		}
		return client.Play(path)
	case "playlist":
		path, err := pathArg()
		if err != nil {
			return err
		}
		return client.Playlist(path)
	case "queue":
		path, err := pathArg()
		if err != nil {
			return err
		}
		return client.Queue(path)
	case "pause":
		return bare(client.Pause)
	case "resume":
		return bare(client.Resume)
	case "toggle":
		return bare(client.Toggle)
	case "stop":
		return bare(client.Stop)
	case "next":
		return bare(client.Next)
	case "prev":
		return bare(client.Prev)
	case "seek":
		n, rel, err := numArg()
		if err != nil {
			return err
		}
		return client.Seek(n, rel)
	case "vol":
		n, rel, err := numArg()
		if err != nil {
			return err
		}
		return client.SetVolume(n, rel)
	case "jump":
		n, _, err := numArg()
		if err != nil {
			return err
		}
		return client.Jump(n)
	case "status":
		return bare(client.RequestStatus)
	case "quit":
		return bare(client.Quit)
	}

	return fmt.Errorf("unknown command %q", name)
}
