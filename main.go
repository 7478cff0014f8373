package main

import "github.com/mrivkah3/convective-adjustment/cmd"

func main() {
	cmd.Execute()
}
