package main

import (
	"os"

	"github.com/keisukeshimizu/wt/cmd"
	"github.com/keisukeshimizu/wt/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}
