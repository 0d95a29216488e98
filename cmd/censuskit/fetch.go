package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/censuskit/censuskit/census"
	"github.com/censuskit/censuskit/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [flags]",
		Short: "Fetch ACS 5-year profile data for every US county across a year range",
		RunE:  runFetchCmd,
	}

	cmd.Flags().Int("start-year", 0, "First ACS vintage to fetch (inclusive)")
	cmd.Flags().Int("end-year", 0, "Last ACS vintage to fetch (inclusive)")
	cmd.Flags().StringSlice("var-code", nil, "ACS variable code to fetch, repeatable")
	cmd.Flags().StringSlice("var-name", nil, "Output column label for the corresponding --var-code, repeatable")
	cmd.Flags().String("output", "", "Filename under the data directory; when unset the table is written to stdout")
	cmd.Flags().String("api-key", "", "Census API key (defaults to $CENSUS_API_KEY)")
	cmd.Flags().Bool("snake-headers", false, "Rewrite column labels as snake_case identifiers")
	viper.BindPFlag("fetch.start_year", cmd.Flags().Lookup("start-year"))
	viper.BindPFlag("fetch.end_year", cmd.Flags().Lookup("end-year"))
	viper.BindPFlag("fetch.var_codes", cmd.Flags().Lookup("var-code"))
	viper.BindPFlag("fetch.var_names", cmd.Flags().Lookup("var-name"))
	viper.BindPFlag("fetch.output", cmd.Flags().Lookup("output"))
	viper.BindPFlag("fetch.api_key", cmd.Flags().Lookup("api-key"))
	viper.BindPFlag("fetch.snake_headers", cmd.Flags().Lookup("snake-headers"))

	return cmd
}

func runFetchCmd(cmd *cobra.Command, args []string) error {
	q := census.RangeQuery{
		StartYear: viper.GetInt("fetch.start_year"),
		EndYear:   viper.GetInt("fetch.end_year"),
		VarCodes:  viper.GetStringSlice("fetch.var_codes"),
		VarNames:  viper.GetStringSlice("fetch.var_names"),
	}
	if q.StartYear == 0 || q.EndYear == 0 {
		return fmt.Errorf("both --start-year and --end-year must be specified")
	}
	if len(q.VarCodes) == 0 {
		return fmt.Errorf("at least one --var-code must be specified")
	}
	if len(q.VarCodes) != len(q.VarNames) {
		return fmt.Errorf("--var-code given %d times but --var-name %d times - they must align", len(q.VarCodes), len(q.VarNames))
	}

	var opts []census.ClientOption
	if apiKey := viper.GetString("fetch.api_key"); apiKey != "" {
		opts = append(opts, census.WithAPIKey(apiKey))
	}
	client := census.NewClient(opts...)

	t, err := client.FetchCountyRange(cmd.Context(), q)
	if err != nil {
		return err
	}
	if viper.GetBool("fetch.snake_headers") {
		t.NormalizeHeaders()
	}

	output := viper.GetString("fetch.output")
	if output == "" {
		return t.WriteCSV(os.Stdout)
	}
	dest := filepath.Join(constants.DataDir, output)
	if err := t.WriteFile(dest); err != nil {
		return err
	}
	slog.Info("saved aggregate table", "file", dest, "rows", t.RowCount())
	return nil
}
