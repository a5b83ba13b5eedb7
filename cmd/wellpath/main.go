package main

import "github.com/jcarver/wellpath/cmd/wellpath/cmd"

func main() {
	cmd.Execute()
}
