package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/lingo-review/internal/bankimport"
	"github.com/spf13/cobra"
)

func newBankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Manage the distractor bank",
	}
	cmd.AddCommand(newBankImportCmd())
	return cmd
}

func newBankImportCmd() *cobra.Command {
	var (
		xlsxPath string
		outPath  string
		sheet    string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert a spreadsheet of distractors into a JSON bank",
		Long: "Reads rows of activity type, band and word from an .xlsx workbook and " +
			"writes a bank file usable as quiz.bank_path.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			importCfg := bankimport.DefaultImportConfig()
			importCfg.SheetName = sheet

			bank, result, err := bankimport.ImportFile(xlsxPath, importCfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer f.Close()
				if err := bankimport.WriteBank(f, bank); err != nil {
					return err
				}
			} else if err := bankimport.WriteBank(out, bank); err != nil {
				return err
			}

			report := cmd.ErrOrStderr()
			fmt.Fprintf(report, "processed %d row(s): %d imported, %d skipped\n",
				result.TotalProcessed, result.Imported, result.Skipped)
			for _, msg := range result.Errors {
				fmt.Fprintf(report, "  %s\n", msg)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "workbook to import")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name (default: first sheet)")
	_ = cmd.MarkFlagRequired("xlsx")
	return cmd
}
