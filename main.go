package main

import "github.com/vibast-solutions/ms-go-keys/cmd"

func main() {
	cmd.Execute()
}
