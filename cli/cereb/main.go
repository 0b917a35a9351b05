package main

import (
	"os"

	cerebcmder "github.com/synaptiq/cereb/cmd/cereb"
)

func main() {
	cmd := cerebcmder.NewCerebCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
