package main

import "swimlog/cmd/client/cmd"

func main() {
	cmd.Execute()
}
