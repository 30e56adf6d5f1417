package main

import "github.com/notargets/gowarp/cmd"

func main() {
	cmd.Execute()
}
