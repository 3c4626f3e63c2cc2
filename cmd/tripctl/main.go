// tripctl plans trips from the command line and prints the itinerary as
// markdown.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/voyago/tripdesk/agents"
	"github.com/voyago/tripdesk/bootstrap"
	"github.com/voyago/tripdesk/config"
	logcontext "github.com/voyago/tripdesk/context"
	"github.com/voyago/tripdesk/log"
	"github.com/voyago/tripdesk/trip"
)

var planReq trip.TripRequest

var rootCmd = &cobra.Command{
	Use:   "tripctl",
	Short: "Plan trips from the terminal",
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a trip and print the itinerary",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := planReq.Validate(); err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := logcontext.WithRequestID(cmd.Context(), logcontext.NewRequestID())
		app, err := bootstrap.Setup(ctx, cfg)
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
		for _, disabled := range app.Disabled {
			fmt.Fprintf(os.Stderr, "warning: %v\n", disabled)
		}

		it, err := app.Planner.Plan(ctx, planReq)
		if err != nil {
			return err
		}

		fmt.Println(agents.FormatItinerary(it))
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat [query]",
	Short: "Ask the travel agent a free-form question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := logcontext.WithRequestID(cmd.Context(), logcontext.NewRequestID())
		app, err := bootstrap.Setup(ctx, cfg)
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
		if app.Agent == nil {
			return fmt.Errorf("no language model configured, set GEMINI_API_KEY, OPENAI_API_KEY or AI_PLUGIN=ollama")
		}

		answer, _, err := app.Agent.Run(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Println(answer)
		return nil
	},
}

func init() {
	flags := planCmd.Flags()
	flags.StringVar(&planReq.Origin, "origin", "", "origin airport IATA code")
	flags.StringVar(&planReq.Destination, "destination", "", "destination airport IATA code")
	flags.StringVar(&planReq.DepartDate, "depart", "", "departure date (YYYY-MM-DD)")
	flags.StringVar(&planReq.ReturnDate, "return", "", "return date (YYYY-MM-DD), omit for one-way")
	flags.StringVar(&planReq.Preferences, "preferences", "", "traveler interests, e.g. \"art museums, hiking\"")
	flags.StringVar((*string)(&planReq.Energy), "energy", "", "trip pace: low, medium or high")
	flags.Float64Var(&planReq.Budget, "budget", 0, "budget applied to flight and hotel selection")
	flags.StringVar(&planReq.Currency, "currency", "", "pricing currency (defaults to USD)")
	flags.StringVar(&planReq.Country, "country", "", "destination country code for holiday lookups, e.g. FR")
	flags.IntVar(&planReq.Adults, "adults", 1, "number of adult travelers")

	planCmd.MarkFlagRequired("origin")
	planCmd.MarkFlagRequired("destination")
	planCmd.MarkFlagRequired("depart")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(chatCmd)
}

func main() {
	log.Init()
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
