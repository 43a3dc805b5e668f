package main

import (
	"cancionero/cmd"
)

func main() {
	cmd.Execute()
}
