package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the generation models available to your key",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		e, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		models, err := e.gateway.ListModels(ctx)
		if err != nil {
			return err
		}

		current, _ := e.state.CurrentModel(ctx)
		for _, m := range models {
			marker := " "
			if m.ID == current {
				marker = "*"
			}
			fmt.Printf("%s %-40s %s\n", marker, m.ID, m.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
