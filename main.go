package main

import (
	"github.com/notseanray/seanifyv2-backend/cmd"
)

func main() {
	cmd.Execute()
}
