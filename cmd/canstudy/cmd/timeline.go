package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/canstudy/tracker/internal/service"
	"github.com/canstudy/tracker/internal/timeline"
)

func TimelineCmd() *cobra.Command {
	var (
		season string
		year   int
	)

	c := &cobra.Command{
		Use:   "timeline",
		Short: "Print the milestone plan for an intake",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := service.Build(season, year, nil, time.Now())
			if err != nil {
				return err
			}
			return printTimeline(cmd.OutOrStdout(), view)
		},
	}

	c.Flags().StringVar(&season, "season", timeline.SeasonSeptember, "intake season (september, january, may)")
	c.Flags().IntVar(&year, "year", 0, "intake year (0 picks the next upcoming intake)")

	return c
}

func printTimeline(out io.Writer, view *service.TimelineView) error {
	fmt.Fprintf(out, "Intake: %s %d (%s)\n\n", view.Season, view.Year, view.IntakeDate.Format("2006-01-02"))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DUE\tDAYS\tSTATUS\tCATEGORY\tMILESTONE")
	for _, m := range view.Milestones {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			m.DueDate.Format("2006-01-02"), m.DaysUntil, m.Status, m.Category, m.Title)
	}
	err := tw.Flush()
	if err != nil {
		return err
	}

	if view.Next != nil {
		fmt.Fprintf(out, "\nNext: %s in %d days\n", view.Next.Title, view.Next.DaysUntil)
	}
	return nil
}
