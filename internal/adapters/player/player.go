package player

import (
	"fmt"
	"os"
	"os/exec"

	"audiorev/internal/ports"
)

// Player implements ports.Player
type Player struct{}

var _ ports.Player = (*Player)(nil)

// NewPlayer creates a new audio player
func NewPlayer() *Player {
	return &Player{}
}

// Play plays an audio file with the system player, blocking until it exits
func (p *Player) Play(path string) error {
	cmd, err := p.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for playing a file
// This is useful for integrating with bubbletea's ExecProcess
func (p *Player) Command(path string) (*exec.Cmd, error) {
	player, args := p.findPlayer()
	if player == "" {
		return nil, fmt.Errorf("no audio player found: set $AUDIOREV_PLAYER or install afplay, paplay, aplay, or ffplay")
	}

	cmd := exec.Command(player, append(args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findPlayer returns the player command to use and its fixed arguments
func (p *Player) findPlayer() (string, []string) {
	// Explicit override first
	if player := os.Getenv("AUDIOREV_PLAYER"); player != "" {
		return player, nil
	}

	// Try common players: macOS, PulseAudio, ALSA, ffmpeg
	candidates := []struct {
		name string
		args []string
	}{
		{"afplay", nil},
		{"paplay", nil},
		{"aplay", nil},
		{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c.name); err == nil {
			return path, c.args
		}
	}

	return "", nil
}
