package main

import "papersum/cmd"

func main() {
	cmd.Execute()
}
