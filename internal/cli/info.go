package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/IamSagarRai/optimesh/pkg/meshio"
)

// infoCommand creates the info command for inspecting mesh quality.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [mesh.json|mesh.off]",
		Short: "Print mesh statistics and quality measures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
}

// runInfo loads the mesh and prints its statistics.
func runInfo(input string) error {
	m, err := meshio.Import(input)
	if err != nil {
		return fmt.Errorf("load mesh %s: %w", input, err)
	}

	stats := m.ComputeStats()

	boundary := 0
	for _, b := range m.BoundaryPoints() {
		if b {
			boundary++
		}
	}

	dim := "planar"
	for _, p := range m.Points {
		if p.Z != 0 {
			dim = "surface"
			break
		}
	}

	fmt.Println(StyleTitle.Render(input))
	printKeyValue("geometry", dim)
	printNewline()

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Metric", "Value").
		Rows(
			[]string{"points", fmt.Sprintf("%d", stats.NumPoints)},
			[]string{"boundary points", fmt.Sprintf("%d", boundary)},
			[]string{"cells", fmt.Sprintf("%d", stats.NumCells)},
			[]string{"min quality", fmt.Sprintf("%.4f", stats.MinQuality)},
			[]string{"avg quality", fmt.Sprintf("%.4f", stats.AvgQuality)},
			[]string{"min angle", fmt.Sprintf("%.2f°", stats.MinAngleDeg)},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	printNewline()
	printNextStep("Smooth", "optimesh smooth "+input)

	return nil
}
