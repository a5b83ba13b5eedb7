package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var researcherCmd = &cobra.Command{
	Use:   "researcher",
	Short: "Researcher tools",
}

var researcherQueryCmd = &cobra.Command{
	Use:   "query [field=value ...]",
	Short: "Query participants with arbitrary filters",
	Long: `Runs a researcher query. Filters are given as field=value pairs and
passed to the server verbatim, e.g.:

  wellpath researcher query last_name=whitaker
  wellpath researcher query "age=>65"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := make(map[string]any, len(args))
		for _, arg := range args {
			field, value, found := strings.Cut(arg, "=")
			if !found || field == "" {
				return fmt.Errorf("invalid filter %q (want field=value)", arg)
			}
			filter[field] = value
		}

		e, err := newAuthedEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		page, err := e.client.ResearcherQuery(cmd.Context(), filter, pageQueryFromFlags())
		if err != nil {
			return err
		}
		return printJSON(cmd, page)
	},
}

func init() {
	rootCmd.AddCommand(researcherCmd)
	researcherCmd.AddCommand(researcherQueryCmd)
	addPageFlags(researcherQueryCmd)
}
