package commands

import (
	"github.com/de-tools/hostaway-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/hostaway-atlas/pkg/services/dashboard"
	fileexport "github.com/de-tools/hostaway-atlas/pkg/store/export"
	"github.com/spf13/cobra"
)

type ValidateCmd struct {
	criteria criteriaFlags
	save     saveFlags
	download bool
	question string
	load     Loader
	reporter *export.Reporter
}

func NewValidateCmd(load Loader, reporter *export.Reporter) *cobra.Command {
	vc := &ValidateCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Reconcile rental revenue against base rate plus cleaning fee",
		Args:  cobra.NoArgs,
		RunE:  vc.run,
	}

	vc.criteria.bind(cmd, nil)
	cmd.Flags().StringVarP(&vc.question, "question", "q", "", "Question for the agent about the validated table")
	cmd.Flags().BoolVar(&vc.download, "download", false, "Also write the discrepancy rows to a file")
	cmd.Flags().StringVar(&vc.save.dir, "dir", ".", "Directory for downloaded files")
	cmd.Flags().StringVar(&vc.save.format, "format", "csv", "Download format: csv, xlsx or pdf")

	return cmd
}

func (vc *ValidateCmd) run(cmd *cobra.Command, _ []string) error {
	criteria, err := vc.criteria.criteria()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	env, err := vc.load(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	page, err := env.Dashboard.Validate(ctx, dashboard.ReportRequest{
		Credentials: env.Credentials,
		Criteria:    criteria,
		Question:    vc.question,
	})
	if err != nil {
		return err
	}
	if err := vc.reporter.Validation(page); err != nil {
		return err
	}

	if !vc.download || page.Result == nil || page.Result.AllValid() {
		return nil
	}
	path, err := vc.save.save(fileexport.DiscrepanciesFileName, "Rental Revenue Discrepancies", page.Result.Discrepancies)
	if err != nil {
		return err
	}
	vc.reporter.Saved(path)
	return nil
}
