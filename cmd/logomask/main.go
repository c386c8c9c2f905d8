package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// logomask light                      public/SAGA_Logo_new.png   -> public/SAGA_Logo_clean.png
// logomask dark                       public/SAGA_Logo_final.png -> public/SAGA_Logo_transparent.png
// logomask dark -i logo.png -o out.png
// logomask batch --policy dark a.png b.png

var rootCmd = &cobra.Command{
	Use:           "logomask",
	Short:         "Make flat logo backgrounds transparent",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
