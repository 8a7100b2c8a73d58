package main

import "github.com/hoppxi/hkcheck/internal/cmd"

func main() {
	cmd.Execute()
}
