package main

import "farm-manager/cmd"

func main() {
	cmd.Execute()
}
