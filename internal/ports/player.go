package ports

import "os/exec"

// Player hands an audio file off to an external player. Decoding and
// playback stay outside the core.
type Player interface {
	// Play starts playback of the file at path and returns without
	// waiting for it to finish.
	Play(path string) error

	// Command returns an exec.Cmd for playing a file, for integration
	// with bubbletea's ExecProcess.
	Command(path string) (*exec.Cmd, error)
}
