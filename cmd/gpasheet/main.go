package main

import "github.com/openswoop/gpasheet/cmd"

func main() {
	cmd.Execute()
}
