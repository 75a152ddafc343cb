package main

import "github.com/Sena-ops/pygate/cmd"

func main() {
	cmd.Execute()
}
