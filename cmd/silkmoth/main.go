package main

import "silkmoth/internal/cli"

func main() {
	cli.Execute()
}
