package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gestasai/academy-tutor/internal/lesson"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Manage imported lessons",
}

var lessonImportCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Import a lesson export from the course editor",
	Args:  cobra.ExactArgs(1),
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

		imported, err := lesson.NewImporter(e.lessonsRepo).ImportFile(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("imported %s — %s (%d flashcards, %d quiz questions, %d chunks)\n",
			imported.ID, imported.Title,
			len(imported.Flashcards), len(imported.Quiz), len(imported.KnowledgeChunks))
		return nil
	},
}

var lessonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported lessons",
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

		lessons, err := e.lessonsRepo.List(ctx)
		if err != nil {
			return err
		}
		if len(lessons) == 0 {
			fmt.Println("no lessons imported yet")
			return nil
		}

		for _, l := range lessons {
			fmt.Printf("%-30s %s\n", l.ID, l.Title)
		}
		return nil
	},
}

func init() {
	lessonCmd.AddCommand(lessonImportCmd)
	lessonCmd.AddCommand(lessonListCmd)
	rootCmd.AddCommand(lessonCmd)
}
