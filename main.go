package main

import "github.com/jsphweid/midiscope/cmd"

func main() {
	cmd.Execute()
}
