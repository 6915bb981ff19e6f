package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/vitaapp/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vitaapp",
		Short: "VitaApp - personal life-admin dashboard backend",
		Long: `VitaApp is the backend of a personal life-admin dashboard: deadlines,
properties, vehicles, expenses, events, contacts, bookings, workouts and
a profile, each persisted as a flat JSON file and served over a REST API.`,
		Run: func(cmd *cobra.Command, args []string) {
			commands.RunServer()
		},
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewDataCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
