package main

import "builddeps/src/cmd"

func main() {
	cmd.Execute()
}
