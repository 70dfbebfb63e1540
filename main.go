package main

import "senametas/cmd"

func main() {
	cmd.Execute()
}
