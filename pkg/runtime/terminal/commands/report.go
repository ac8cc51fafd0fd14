package commands

import (
	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/hostaway-atlas/pkg/services/dashboard"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	criteria criteriaFlags
	save     saveFlags
	download bool
	question string
	columns  []string
	optimize bool
	maxRows  int
	load     Loader
	reporter *export.Reporter
}

func NewReportCmd(load Loader, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:       "report <calculated|standard|listing-financials>",
		Short:     "Fetch a finance report and optionally ask a question about it",
		Args:      cobra.ExactArgs(1),
		ValidArgs: variantNames(),
		RunE:      rc.run,
	}

	rc.criteria.bind(cmd, []int{int(domain.ChannelAirbnbOfficial)})
	cmd.Flags().StringVarP(&rc.question, "question", "q", "", "Question for the agent about the report")
	cmd.Flags().StringSliceVar(&rc.columns, "columns", nil, "Columns to keep in the displayed view")
	cmd.Flags().BoolVar(&rc.optimize, "optimize", false, "Keep only the first columns when --columns is not set")
	cmd.Flags().IntVar(&rc.maxRows, "max-rows", 0, "Rows to display, negative shows all (default from settings)")
	cmd.Flags().BoolVar(&rc.download, "download", false, "Write the full report to a file instead of displaying it")
	cmd.Flags().StringVar(&rc.save.dir, "dir", ".", "Directory for downloaded files")
	cmd.Flags().StringVar(&rc.save.format, "format", "csv", "Download format: csv, xlsx or pdf")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	variant, err := domain.ParseReportVariant(args[0])
	if err != nil {
		return err
	}
	criteria, err := rc.criteria.criteria()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	env, err := rc.load(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	req := dashboard.ReportRequest{
		Credentials: env.Credentials,
		Criteria:    criteria,
		Question:    rc.question,
		Columns:     rc.columns,
		Optimize:    rc.optimize,
		MaxRows:     rc.maxRows,
	}

	if rc.download {
		t, err := env.Dashboard.Fetch(ctx, variant, req)
		if err != nil {
			return err
		}
		path, err := rc.save.save(variant.FileName(), variant.Title(), t)
		if err != nil {
			return err
		}
		rc.reporter.Saved(path)
		return nil
	}

	page, err := env.Dashboard.Report(ctx, variant, req)
	if err != nil {
		return err
	}
	return rc.reporter.Report(page)
}

func variantNames() []string {
	names := make([]string, len(domain.ReportVariants))
	for i, v := range domain.ReportVariants {
		names[i] = string(v)
	}
	return names
}
