package main

import "frostpaw/cmd/fp/root"

func main() {
	root.Execute()
}
