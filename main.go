package main

import "github.com/opencivic/civic-reporter/cmd"

func main() {
	cmd.Execute()
}
