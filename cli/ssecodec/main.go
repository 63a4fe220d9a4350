package main

import (
	"os"

	ssecodeccmder "github.com/papercomputeco/ssecodec/cmd/ssecodec"
)

func main() {
	cmd := ssecodeccmder.NewSSECodecCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
