package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/profeai/profeai-api/internal/config"
	"github.com/profeai/profeai-api/internal/lesson"
	"github.com/profeai/profeai-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

// lessonOutput is the --json form of the lesson command.
type lessonOutput struct {
	lesson.Record
	Provenance lesson.Provenance `json:"provenance"`
}

func newLessonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Generate one lesson and print it, without a database",
		Long: "Generate one lesson with the configured provider, falling back to the catalog, " +
			"and print it. Useful for checking provider connectivity and catalog content.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, _ := cmd.Flags().GetString("specialization")
			level, _ := cmd.Flags().GetString("level")
			topic, _ := cmd.Flags().GetString("topic")
			feedback, _ := cmd.Flags().GetString("feedback")
			asJSON, _ := cmd.Flags().GetBool("json")

			llmCfg, err := config.LoadLLMFile(configPath(cmd))
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "warn"}, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}

			generator, err := newGenerator(cmd.Context(), *llmCfg, log)
			if err != nil {
				return err
			}

			res := generator.GenerateLesson(cmd.Context(), lesson.Request{
				Specialization: spec,
				Level:          level,
				Topic:          topic,
				PriorFeedback:  feedback,
			})
			return printLesson(cmd.OutOrStdout(), res, asJSON)
		},
	}
	cmd.Flags().String("specialization", lesson.SpecializationTheory, "Theory, Tooling or Hybrid")
	cmd.Flags().String("level", lesson.LevelBeginner, "Beginner, Intermediate or Advanced")
	cmd.Flags().String("topic", "", "Optional topic to steer generation")
	cmd.Flags().String("feedback", "", "Optional prior feedback, e.g. confused")
	cmd.Flags().Bool("json", false, "Print the lesson as JSON")
	return cmd
}

func printLesson(w io.Writer, res lesson.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lessonOutput{Record: res.Record, Provenance: res.Provenance})
	}

	if _, err := fmt.Fprintf(w, "# %s\n\n%s\n", res.Record.Title, res.Record.Content); err != nil {
		return err
	}
	if res.Record.Exercise != "" {
		if _, err := fmt.Fprintf(w, "\nExercise: %s\n", res.Record.Exercise); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n(provenance: %s)\n", res.Provenance)
	return err
}
