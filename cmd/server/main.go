package main

import "github.com/cropcraft/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
