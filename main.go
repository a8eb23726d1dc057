package main

import "energy-dashboard/cmd"

func main() {
	cmd.Execute()
}
