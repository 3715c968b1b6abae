package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Govind-619/ebook-store/commands"
)

func main() {
	if err := commands.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
