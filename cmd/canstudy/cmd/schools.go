package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canstudy/tracker/internal/catalog"
	"github.com/canstudy/tracker/internal/currency"
	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/service"
)

func SchoolsCmd() *cobra.Command {
	var filter service.SchoolFilter

	c := &cobra.Command{
		Use:   "schools",
		Short: "List catalog schools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			schools := service.NewSchoolService(cat).Schools(filter)
			return printSchools(cmd.OutOrStdout(), schools)
		},
	}

	c.Flags().StringVar(&filter.Search, "search", "", "match name, city or description")
	c.Flags().StringVar(&filter.Type, "type", "", "university or college")
	c.Flags().StringVar(&filter.Province, "province", "", "province code, e.g. ON")
	c.Flags().StringVar(&filter.DegreeType, "degree", "", "undergrad, masters or phd")
	c.Flags().StringVar(&filter.Sort, "sort", service.SchoolSortRanking, "ranking, tuition or name")

	return c
}

func printSchools(out io.Writer, schools []model.School) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCHOOL\tCITY\tPROVINCE\tTUITION")
	for _, s := range schools {
		rank := "-"
		if s.Ranking != nil {
			rank = fmt.Sprint(*s.Ranking)
		}
		tuition := "-"
		if s.TuitionUndergrad != nil {
			tuition = currency.Format(*s.TuitionUndergrad, currency.Base)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", rank, s.Name, s.City, s.Province, tuition)
	}
	return tw.Flush()
}
