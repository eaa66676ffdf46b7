package main

import (
	"fmt"
	"os"

	"github.com/med-tools/clinreport/pkg/runtime/terminal"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{Output: os.Stdout})
	if err := cli.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
