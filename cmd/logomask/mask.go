package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	bgmask "github.com/saga-labs/logomask"
)

type preset struct {
	policy  bgmask.Policy
	in, out string
	created string
}

var presets = []preset{
	{
		policy:  bgmask.PolicyLight,
		in:      "public/SAGA_Logo_new.png",
		out:     "public/SAGA_Logo_clean.png",
		created: "Clean transparent logo created",
	},
	{
		policy:  bgmask.PolicyDark,
		in:      "public/SAGA_Logo_final.png",
		out:     "public/SAGA_Logo_transparent.png",
		created: "Transparent logo created",
	},
}

func init() {
	for _, p := range presets {
		rootCmd.AddCommand(newMaskCmd(p))
	}
}

func newMaskCmd(p preset) *cobra.Command {
	cmd := &cobra.Command{
		Use:   p.policy.String(),
		Short: fmt.Sprintf("Remove a %s background from a logo", p.policy),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMask(cmd, p)
		},
	}
	cmd.Flags().StringP("in", "i", p.in, "Input image (png/jpg/gif/webp/bmp/tiff)")
	cmd.Flags().StringP("out", "o", p.out, "Output PNG path")
	cmd.Flags().String("inbase64", "", "Base64 image input, optionally a data URL (- reads stdin)")
	cmd.Flags().Bool("base64", false, "Write the PNG as base64 to stdout instead of a file")
	cmd.MarkFlagsMutuallyExclusive("in", "inbase64")
	return cmd
}

func runMask(cmd *cobra.Command, p preset) error {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	inBase64, _ := cmd.Flags().GetString("inbase64")
	toBase64, _ := cmd.Flags().GetBool("base64")

	if inBase64 == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		inBase64 = string(data)
	}

	// Status lines move to stderr when stdout carries the image.
	status := cmd.OutOrStdout()
	if toBase64 {
		status = cmd.ErrOrStderr()
	}

	var res bgmask.Result
	switch {
	case inBase64 != "" && toBase64:
		encoded, r, err := bgmask.RemoveBackgroundBase64(inBase64, p.policy)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), encoded)
		res = r

	case inBase64 != "":
		img, _, err := bgmask.DecodeBase64Image(inBase64)
		if err != nil {
			return err
		}
		cleaned, r, err := bgmask.RemoveBackground(img, p.policy)
		if err != nil {
			return err
		}
		if err := bgmask.WritePNGFile(out, cleaned); err != nil {
			return err
		}
		fmt.Fprintf(status, "%s: %s\n", p.created, out)
		res = r

	case toBase64:
		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		png, r, err := bgmask.RemoveBackgroundBytes(data, p.policy)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(png))
		res = r

	default:
		r, err := bgmask.ProcessFile(in, out, p.policy)
		if err != nil {
			return err
		}
		fmt.Fprintf(status, "%s: %s\n", p.created, out)
		res = r
	}

	fmt.Fprintf(status, "Original size: %s\n", res.Size())
	if d := p.policy.Description(); d != "" {
		fmt.Fprintln(status, d)
	}
	return nil
}
