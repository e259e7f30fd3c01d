package main

import "github.com/oshokin/tp-plugin-build/cmd/make-distro/cmd"

func main() {
	cmd.Execute()
}
