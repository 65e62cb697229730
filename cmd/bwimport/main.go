package main

import (
	"github.com/vault-cli/bwimport/internal/cli"
	"github.com/vault-cli/bwimport/internal/util"
)

func main() {
	if err := cli.Execute(); err != nil {
		util.HandleError(err, "")
	}
}
