package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jcarver/wellpath/client"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the server's build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Unauthenticated endpoint; no session store needed.
		cfg, err := appConfig()
		if err != nil {
			return err
		}
		c := client.New(cfg.APIURL, client.WithLogger(newLogger(cfg)))

		info, err := c.SiteInfo(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, info)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
