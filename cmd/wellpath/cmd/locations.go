package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcarver/wellpath/client"
)

var locationsResolveParents bool

var locationsCmd = &cobra.Command{
	Use:   "locations [id]",
	Short: "List program sites, or fetch one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newAuthedEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if len(args) == 1 {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			loc, ok, err := e.client.Location(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no location with id %d", id)
			}
			return printJSON(cmd, loc)
		}

		locations, err := e.client.Locations(cmd.Context())
		if err != nil {
			return err
		}
		if locationsResolveParents {
			return printJSON(cmd, client.OrganizeLocations(locations))
		}
		return printJSON(cmd, locations)
	},
}

func init() {
	rootCmd.AddCommand(locationsCmd)
	locationsCmd.Flags().BoolVar(&locationsResolveParents, "resolve-parents", false, "Nest parent locations in the output")
}
