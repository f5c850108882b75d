package main

import (
	"github.com/sorinciupitu/extrase-trezorerie/cmd"
)

func main() {
	cmd.Execute()
}
