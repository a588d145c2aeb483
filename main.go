package main

import "github.com/kozaktomas/photo-labels/cmd"

func main() {
	cmd.Execute()
}
