package main

import "github.com/JonMunkholm/fieldmap/internal/cli"

func main() {
	cli.Execute()
}
