package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askLessonID string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and exit",
	Args:  cobra.MinimumNArgs(1),
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

		sessionID := "cli-ask"
		if askLessonID != "" {
			e.state.SetLessonID(sessionID, askLessonID)
		}

		res, err := e.tutor.HandleMessage(ctx, sessionID, strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Println(res.Text)
		if res.Source != "" {
			fmt.Printf("\n(%s via %s)\n", res.Type, res.Source)
		} else if res.Type != "" {
			fmt.Printf("\n(%s)\n", res.Type)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askLessonID, "lesson", "l", "", "lesson id to answer within")
	rootCmd.AddCommand(askCmd)
}
