// Command dispcurve computes the fundamental-mode Rayleigh-wave dispersion
// curve of a layered model described in a YAML file.
//
//	dispcurve --model two-layer.yaml --freq 1 --freq 2 --freq 5 --output yaml
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
