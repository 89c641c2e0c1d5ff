package config

import "os"

const DefaultDatasetRoot = "~/datasets/audio-review"

// DatasetRoot returns the dataset root from AUDIOREV_DATASET env var,
// falling back to DefaultDatasetRoot.
func DatasetRoot() string {
	if env := os.Getenv("AUDIOREV_DATASET"); env != "" {
		return env
	}
	return DefaultDatasetRoot
}

// AESCommand returns the scoring command from AUDIOREV_AES_COMMAND env var,
// falling back to the default executable name looked up on PATH.
func AESCommand() string {
	if env := os.Getenv("AUDIOREV_AES_COMMAND"); env != "" {
		return env
	}
	return "audio-aes"
}
