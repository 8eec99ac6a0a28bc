package main

import "github.com/dafibh/fortuna/tracker-backend/internal/cli"

func main() {
	cli.Execute()
}
