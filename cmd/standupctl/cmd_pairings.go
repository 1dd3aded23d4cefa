package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/arnavshah/standup-api-go/pkg/roster"
	"github.com/arnavshah/standup-api-go/pkg/rotation"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type pairingsOptions struct {
	rosterPath string
	date       string
	absent     []string
	week       bool
	json       bool
}

func newPairingsCmd() *cobra.Command {
	opts := &pairingsOptions{}

	cmd := &cobra.Command{
		Use:   "pairings",
		Short: "Print who reads whose update",
		Long: `Reads a YAML roster and prints the reading assignment for a date.
Absentees come from the roster file's absent list plus any --absent flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPairings(cmd.OutOrStdout(), opts, time.Now())
		},
	}

	cmd.Flags().StringVarP(&opts.rosterPath, "roster", "r", "roster.yaml", "path to the YAML roster")
	cmd.Flags().StringVarP(&opts.date, "date", "d", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringSliceVarP(&opts.absent, "absent", "a", nil, "members who are away")
	cmd.Flags().BoolVarP(&opts.week, "week", "w", false, "print Monday through Friday of the ISO week")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	return cmd
}

func runPairings(out io.Writer, opts *pairingsOptions, now time.Time) error {
	f, err := roster.LoadFile(opts.rosterPath)
	if err != nil {
		return err
	}

	date := now
	if opts.date != "" {
		if date, err = time.Parse(dateLayout, opts.date); err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", opts.date)
		}
	}

	absent := append(append([]string(nil), f.Absent...), opts.absent...)

	var days []*rotation.Assignment
	if opts.week {
		days, err = rotation.Week(date, f.Teams, absent)
	} else {
		var a *rotation.Assignment
		a, err = rotation.Assign(date, f.Teams, absent)
		days = []*rotation.Assignment{a}
	}
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if opts.week {
			return enc.Encode(days)
		}
		return enc.Encode(days[0])
	}

	for i, a := range days {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := printAssignment(out, a); err != nil {
			return err
		}
	}
	return nil
}

func printAssignment(out io.Writer, a *rotation.Assignment) error {
	fmt.Fprintf(out, "%s  ISO week %d  offset %d\n", a.Meta.Date, a.Meta.ISOWeek, a.Meta.Offset)
	if len(a.Pairs) == 0 {
		fmt.Fprintln(out, "no pairings (fewer than two members present)")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tREADER\tREADS")
	for _, team := range a.Teams {
		for _, r := range team.Readers {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", team.Team, r.Reader, r.Target)
		}
	}
	return tw.Flush()
}
