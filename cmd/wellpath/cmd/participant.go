package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jcarver/wellpath/client"
)

var participantCmd = &cobra.Command{
	Use:   "participant",
	Short: "Look up participants and their records",
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid participant id %q", arg)
	}
	return id, nil
}

var participantGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch one participant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := newAuthedEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		p, ok, err := e.client.FetchParticipant(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no participant with id %d", id)
		}
		return printJSON(cmd, p)
	},
}

var participantDemographicsCmd = &cobra.Command{
	Use:   "demographics <id>",
	Short: "Fetch a participant's demographics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := newAuthedEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		related, err := e.client.Demographics(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !related.ParticipantExists {
			return fmt.Errorf("no participant with id %d", id)
		}
		return printJSON(cmd, related.Data)
	},
}

var participantOverviewCmd = &cobra.Command{
	Use:   "overview <id>",
	Short: "Fetch a participant's health overview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := newAuthedEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		related, err := e.client.HealthOverview(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !related.ParticipantExists {
			return fmt.Errorf("no participant with id %d", id)
		}
		return printJSON(cmd, related.Data)
	},
}

var participantVisitsCmd = &cobra.Command{
	Use:   "visits <id>",
	Short: "List a participant's case-note visits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := newAuthedEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		visits, ok, err := e.client.RecentVisits(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no participant with id %d", id)
		}
		return printJSON(cmd, visits)
	},
}

var (
	lookupFirstName string
	lookupLastName  string
	lookupProgram   string
)

var participantLookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Search participants by name and program",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newAuthedEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		req := client.ParticipantLookupRequest{
			FirstName: lookupFirstName,
			LastName:  lookupLastName,
		}
		if lookupProgram != "" {
			req.Program = &lookupProgram
		}

		page, err := e.client.LookupParticipants(cmd.Context(), req, pageQueryFromFlags())
		if err != nil {
			return err
		}
		return printJSON(cmd, page)
	},
}

var (
	goalsStepsFlag bool
)

var participantGoalsCmd = &cobra.Command{
	Use:   "goals <id>",
	Short: "List a participant's goals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := newAuthedEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		goals, err := e.client.Goals(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !goalsStepsFlag {
			return printJSON(cmd, goals)
		}

		type goalWithSteps struct {
			client.Goal
			Steps []client.GoalStep `json:"steps"`
		}
		out := make([]goalWithSteps, 0, len(goals))
		for _, g := range goals {
			steps, err := e.client.GoalSteps(cmd.Context(), g.ID)
			if err != nil {
				return err
			}
			out = append(out, goalWithSteps{Goal: g, Steps: steps})
		}
		return printJSON(cmd, out)
	},
}

func init() {
	rootCmd.AddCommand(participantCmd)
	participantCmd.AddCommand(participantGetCmd)
	participantCmd.AddCommand(participantDemographicsCmd)
	participantCmd.AddCommand(participantOverviewCmd)
	participantCmd.AddCommand(participantVisitsCmd)
	participantCmd.AddCommand(participantLookupCmd)
	participantCmd.AddCommand(participantGoalsCmd)

	participantLookupCmd.Flags().StringVar(&lookupFirstName, "first-name", "", "First name prefix")
	participantLookupCmd.Flags().StringVar(&lookupLastName, "last-name", "", "Last name prefix")
	participantLookupCmd.Flags().StringVar(&lookupProgram, "program", "", "Program (RHWP or MHWP)")
	addPageFlags(participantLookupCmd)

	participantGoalsCmd.Flags().BoolVar(&goalsStepsFlag, "steps", false, "Include each goal's steps")
}
