package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pohonku/pohonku/internal/client/models"
)

var idr = message.NewPrinter(language.Indonesian)

// rupiah formats an amount the way prices are shown to Indonesian users,
// e.g. "Rp 150.000".
func rupiah(a models.Amount) string {
	return idr.Sprintf("Rp %d", int64(a))
}

func writeSpeciesTable(w io.Writer, list []models.Species) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLATIN NAME\tCATEGORY\tPRICE")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.LatinName, s.Category, rupiah(s.BasePrice))
	}
	_ = tw.Flush()
}

func writeSpecies(w io.Writer, s *models.Species) {
	fmt.Fprintf(w, "%s (%s)\n", s.Name, s.LatinName)
	fmt.Fprintf(w, "  id:        %s\n", s.ID)
	fmt.Fprintf(w, "  category:  %s\n", s.Category)
	fmt.Fprintf(w, "  price:     %s\n", rupiah(s.BasePrice))
	if s.AvailableStock != nil {
		fmt.Fprintf(w, "  stock:     %d\n", *s.AvailableStock)
	}
	if s.CarbonAbsorptionRate != nil {
		fmt.Fprintf(w, "  carbon:    %.1f kg CO2/year\n", *s.CarbonAbsorptionRate)
	}
	if d := strings.TrimSpace(s.Description); d != "" {
		fmt.Fprintf(w, "\n%s\n", d)
	}
}

// countLine summarises a result set. When the backend reported a different
// count than it returned, both are shown.
func countLine(n int, reported *int) string {
	line := fmt.Sprintf("%d species found", n)
	if n == 0 {
		line = "No species match your search."
	}
	if reported != nil && *reported != n {
		line += fmt.Sprintf(" (server reported %d)", *reported)
	}
	return line
}
