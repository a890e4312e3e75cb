package main

import "github.com/koenvw/pane-runner/cmd"

func main() {
	cmd.Execute()
}
