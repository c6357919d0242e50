package main

import "github.com/bunken-app/bunken/cmd"

func main() {
	cmd.Execute()
}
