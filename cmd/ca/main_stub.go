//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of spacewalk requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/ca` or build with `-tags ebiten`,")
	fmt.Fprintln(os.Stderr, "or use `go run ./cmd/walk` for the headless runner.")
	os.Exit(2)
}
