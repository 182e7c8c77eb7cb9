// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rasterpdf/pkg/types"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the rendering quality profiles",
	Long: `Profiles prints the quality tiers available to convert and the
rendering parameters behind each: the scale factor applied to the page's
intrinsic size, the raster encoding, and the encoder quality.`,
	Run: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) {
	fmt.Fprintf(os.Stdout, "%-8s  %-6s  %-9s  %s\n", "Tier", "Scale", "Encoding", "Quality")
	for _, tier := range types.Tiers() {
		p := types.ProfileFor(tier)
		fmt.Fprintf(os.Stdout, "%-8s  %-6.1f  %-9s  %.2f\n",
			tier, p.Scale, p.Encoding, p.CompressionQuality)
	}
}
