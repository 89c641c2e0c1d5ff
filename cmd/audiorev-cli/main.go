package main

import "audiorev/cmd/audiorev-cli/cmd"

func main() {
	cmd.Execute()
}
