package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcarver/wellpath/client"
)

var (
	statsPage     int
	statsPageSize int
)

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&statsPage, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&statsPageSize, "page-size", client.DefaultPageSize, "Entries per page")
}

func pageQueryFromFlags() client.PageQuery {
	return client.PageQuery{Page: statsPage, PageSize: statsPageSize}
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Review a participant's measurement history",
}

// runPagedStats wraps the shared fetch-and-print flow of the three
// history subcommands.
func runPagedStats[T any](cmd *cobra.Command, arg string,
	fetch func(*env, int, client.PageQuery) (client.Page[T], bool, error)) error {

	id, err := parseID(arg)
	if err != nil {
		return err
	}
	e, err := newAuthedEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	page, ok, err := fetch(e, id, pageQueryFromFlags())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no participant with id %d", id)
	}
	return printJSON(cmd, page)
}

var statsBPCmd = &cobra.Command{
	Use:   "bp <id>",
	Short: "Blood pressure history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPagedStats(cmd, args[0],
			func(e *env, id int, q client.PageQuery) (client.Page[client.BloodPressureStats], bool, error) {
				return e.client.BPHistory(cmd.Context(), id, q)
			})
	},
}

var statsWeightCmd = &cobra.Command{
	Use:   "weight <id>",
	Short: "Weight history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPagedStats(cmd, args[0],
			func(e *env, id int, q client.PageQuery) (client.Page[client.WeightEntry], bool, error) {
				return e.client.WeightHistory(cmd.Context(), id, q)
			})
	},
}

var statsGlucoseCmd = &cobra.Command{
	Use:   "glucose <id>",
	Short: "Glucose history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPagedStats(cmd, args[0],
			func(e *env, id int, q client.PageQuery) (client.Page[client.GlucoseEntry], bool, error) {
				return e.client.GlucoseHistory(cmd.Context(), id, q)
			})
	},
}

var statsMedsCmd = &cobra.Command{
	Use:   "medications <id>",
	Short: "Medication list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPagedStats(cmd, args[0],
			func(e *env, id int, q client.PageQuery) (client.Page[client.MedicationEntry], bool, error) {
				return e.client.Medications(cmd.Context(), id, q)
			})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	for _, c := range []*cobra.Command{statsBPCmd, statsWeightCmd, statsGlucoseCmd, statsMedsCmd} {
		statsCmd.AddCommand(c)
		addPageFlags(c)
	}
}
