package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"coffee-edition/internal/catalog"
	"coffee-edition/internal/config"
	"coffee-edition/internal/probe"
)

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Print which model asset the viewer would load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			p := probe.New(cfg.AssetBaseURL, cfg.AssetsDir)
			asset, err := p.Resolve(cmd.Context(), cfg.PrimaryModel, cfg.FallbackModel)
			if err != nil {
				return err
			}
			where := "remote"
			if asset.Local {
				where = "local"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t(%s)\n", asset.Ref, asset.URL, where)
			return nil
		},
	}
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the catalog items and tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MARKER\tID\tLABEL\tURL")
			for _, it := range cat.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Marker, it.ID, it.Label, it.URL)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "TRACK\tNAME\tARTIST\tSRC")
			for _, tr := range cat.Tracks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tr.ID, tr.Name, tr.Artist, tr.Src)
			}
			return w.Flush()
		},
	}
}
