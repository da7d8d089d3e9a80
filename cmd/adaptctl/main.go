package main

import (
	"fmt"
	"os"

	"socialrunner/runner-app/cmd/adaptctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
