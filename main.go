package main

import "github.com/CosmoTheDev/lockrelay/cmd"

func main() {
	cmd.Execute()
}
