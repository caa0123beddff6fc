package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IamSagarRai/optimesh/pkg/optimize"
)

// methodDescriptions maps method names to a one-line summary for display.
var methodDescriptions = map[string]string{
	"laplace":            "move each vertex to the mean of its neighbors",
	"lloyd":              "move each vertex to its control volume centroid",
	"cvt-diagonal":       "alias of lloyd",
	"cvt-block-diagonal": "CVT energy descent with per-vertex Newton blocks",
	"cvt-full":           "CVT energy descent with a global cotangent solve",
	"cpt-fixed-point":    "area-weighted average of incident cell centroids",
	"cpt-quasi-newton":   "CPT energy descent with per-vertex Newton blocks",
	"cpt-linear-solve":   "CPT energy descent with a global uniform solve",
	"odt-fixed-point":    "area-weighted average of incident circumcenters",
}

// odtSelectors are the nonlinear ODT variants handled outside the fixed-point
// driver.
var odtSelectors = []string{
	"odt-bfgs",
	"odt-cg",
	"odt-newton",
	"odt-gradient-descent",
	"odt-nelder-mead",
}

// methodsCommand creates the methods command listing available relaxation methods.
func (c *CLI) methodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the available relaxation methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Fixed-point methods"))
			for _, name := range optimize.Names() {
				desc := methodDescriptions[name]
				fmt.Printf("  %s  %s\n", StyleHighlight.Render(fmt.Sprintf("%-20s", name)), StyleDim.Render(desc))
			}

			printNewline()
			fmt.Println(StyleTitle.Render("Nonlinear ODT methods"))
			for _, name := range odtSelectors {
				fmt.Printf("  %s  %s\n", StyleHighlight.Render(fmt.Sprintf("%-20s", name)),
					StyleDim.Render("minimize the ODT energy with "+name[len("odt-"):]))
			}

			printNewline()
			printDetail("Method names are case-insensitive; spaces and parentheses are ignored.")
			return nil
		},
	}
}
