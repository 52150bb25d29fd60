package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/domain/srs"
	"github.com/spf13/cobra"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect review scheduling",
	}
	cmd.AddCommand(newSchedulePreviewCmd())
	return cmd
}

func newSchedulePreviewCmd() *cobra.Command {
	var (
		startFlag string
		useConfig bool
	)

	cmd := &cobra.Command{
		Use:   "preview RATING...",
		Short: "Replay a sequence of ratings for a new word",
		Example: "  lingoctl schedule preview good good again good\n" +
			"  lingoctl schedule preview --start 2024-01-01 easy easy",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratings := make([]domain.Rating, 0, len(args))
			for _, arg := range args {
				r, err := domain.ParseRating(arg)
				if err != nil {
					return err
				}
				ratings = append(ratings, r)
			}

			start := time.Now().UTC()
			if startFlag != "" {
				t, err := time.Parse(time.DateOnly, startFlag)
				if err != nil {
					return fmt.Errorf("invalid --start %q: want YYYY-MM-DD", startFlag)
				}
				start = t
			}

			params := srs.NewDefaultParams()
			if useConfig {
				_, cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				params = srs.NewParams(srs.ParamsConfig{
					MinEaseFactor:     cfg.SRS.MinEaseFactor,
					InitialEaseFactor: cfg.SRS.InitialEaseFactor,
					FirstInterval:     cfg.SRS.FirstInterval,
					SecondInterval:    cfg.SRS.SecondInterval,
					FailureInterval:   cfg.SRS.FailureInterval,
					MaxInterval:       cfg.SRS.MaxInterval,
				})
			}

			states, err := srs.NewServiceWithParams(params).Preview(ratings, start)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STEP\tRATING\tREP\tEASE\tINTERVAL\tNEXT REVIEW")
			for i, s := range states {
				rating := "-"
				if i > 0 {
					rating = string(ratings[i-1])
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%d\t%s\n",
					i, rating, s.Repetition, s.EaseFactor, s.Interval, s.NextReviewDate.Format(time.DateOnly))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "date of first exposure, YYYY-MM-DD (default: now)")
	cmd.Flags().BoolVar(&useConfig, "use-config", false, "take SRS parameters from the config file instead of defaults")
	return cmd
}
