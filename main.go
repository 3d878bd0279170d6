package main

import "github.com/cristianadrielbraun/qrgen/cmd"

func main() {
	cmd.Execute()
}
