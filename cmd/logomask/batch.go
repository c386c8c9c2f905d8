package main

import (
	"fmt"

	"github.com/spf13/cobra"

	bgmask "github.com/saga-labs/logomask"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] FILE...",
	Short: "Remove backgrounds from many images concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringP("policy", "p", "", "Background policy (light, dark)")
	batchCmd.Flags().String("suffix", "_transparent", "Suffix appended to each output file name")
	batchCmd.Flags().IntP("jobs", "j", 0, "Concurrent images (0 = GOMAXPROCS)")
	batchCmd.MarkFlagRequired("policy")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	policyStr, _ := cmd.Flags().GetString("policy")
	suffix, _ := cmd.Flags().GetString("suffix")
	workers, _ := cmd.Flags().GetInt("jobs")

	policy, err := bgmask.ParsePolicy(policyStr)
	if err != nil {
		return err
	}
	if suffix == "" {
		return fmt.Errorf("--suffix must not be empty")
	}

	jobs := make([]bgmask.Job, len(args))
	for i, in := range args {
		jobs[i] = bgmask.Job{In: in, Out: bgmask.OutputPath(in, suffix)}
	}

	results, err := bgmask.ProcessBatch(cmd.Context(), jobs, bgmask.BatchOptions{Policy: policy, Workers: workers})
	if err != nil {
		return err
	}

	for i, res := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "Processed %s -> %s %s [%d background pixels]\n",
			jobs[i].In, jobs[i].Out, res.Size(), res.Background)
	}
	return nil
}
