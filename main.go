package main

import "github.com/locvowork/census_dashboard/internal/cli"

func main() {
	cli.DoCLI()
}
