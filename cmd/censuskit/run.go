package main

import (
	"fmt"
	"log/slog"

	"github.com/censuskit/censuskit/census"
	"github.com/censuskit/censuskit/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags]",
		Short: "Execute every collection and sync block in a collection spec",
		RunE:  runRunCmd,
	}

	cmd.Flags().String("config", "collection.hcl", "Path to the collection spec")
	viper.BindPFlag("run.config", cmd.Flags().Lookup("config"))

	return cmd
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	spec, err := config.ParseFile(viper.GetString("run.config"))
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	client := census.NewClient()
	for _, c := range spec.Collections {
		q := census.RangeQuery{
			StartYear: c.StartYear,
			EndYear:   c.EndYear,
			VarCodes:  c.VarCodes,
			VarNames:  c.VarNames,
		}
		if c.Output != nil {
			if _, err := client.FetchCountyRangeToFile(ctx, q, *c.Output); err != nil {
				return fmt.Errorf("collection %q: %w", c.Name, err)
			}
		} else {
			t, err := client.FetchCountyRange(ctx, q)
			if err != nil {
				return fmt.Errorf("collection %q: %w", c.Name, err)
			}
			slog.Info("fetched collection", "collection", c.Name, "rows", t.RowCount())
		}
	}

	for _, sc := range spec.Syncs {
		if err := runSync(ctx, sc); err != nil {
			return fmt.Errorf("sync %q: %w", sc.Name, err)
		}
	}

	return nil
}
