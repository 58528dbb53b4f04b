package main

import "github.com/KaramelBytes/tubestats-cli/cmd"

func main() {
	cmd.Execute()
}
