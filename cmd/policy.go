package cmd

import (
	"fmt"
	"strings"

	"github.com/selamanalytics/fidash/internal/cli"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/pipeline"

	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Strategic recommendations for the NFIS",
	RunE:  runPolicy,
}

func init() {
	rootCmd.AddCommand(policyCmd)
}

func runPolicy(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	ds, err := loadData(cfg)
	if err != nil || ds == nil {
		return err
	}

	view := pipeline.BuildPolicy(ds, cfg)
	if ok, err := emitStructured(view); ok {
		return err
	}

	fmt.Print(renderPolicy(view))
	return nil
}

func renderPolicy(view model.PolicyView) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(cli.RenderTitle(view.Title))
	b.WriteString("\n\n")

	for i, in := range view.Insights {
		b.WriteString(cli.RenderHeading(fmt.Sprintf("%d. %s", i+1, in.Title), in.Body))
		for _, bullet := range in.Bullets {
			fmt.Fprintf(&b, "    - %s\n", bullet)
		}
		b.WriteString("\n")
	}

	b.WriteString(cli.RenderHeading("Data Sources", ""))
	for _, s := range view.Sources {
		fmt.Fprintf(&b, "    - %s\n", s)
	}
	b.WriteString("\n  ")
	b.WriteString(view.Footer)
	b.WriteString("\n\n")
	return b.String()
}
