package main

import "github.com/mrivarola/ofertas/cmd"

func main() {
	cmd.Execute()
}
