package main

import "f2bsentinel/cmd"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
