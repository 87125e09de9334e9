package main

import "github.com/dqscore/dqscore/cmd"

func main() {
	cmd.Execute()
}
