package main

import "pto-tracker/cmd"

func main() {
	cmd.Execute()
}
