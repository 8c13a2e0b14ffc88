package main

import "github.com/theirongolddev/savebonus/cmd"

func main() {
	cmd.Execute()
}
