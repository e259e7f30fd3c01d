package main

import "github.com/oshokin/tp-plugin-build/cmd/gen-entry/cmd"

func main() {
	cmd.Execute()
}
