package main

import "github.com/sandrine-crypto/ganttkit/cmd"

func main() {
	cmd.Execute()
}
