package main

import (
	"context"
	"os"
)

const version = "0.1.0-alpha"

func main() {
	ctx := context.Background()
	code := run(ctx, os.Args)
	os.Exit(code)
}
