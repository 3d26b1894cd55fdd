package cli

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"
)

func (a *App) Dashboard(ctx context.Context) error {
	ov, err := a.dashboardService.Overview(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Adoptions: %d   Trees planted: %d   Carbon absorbed: %.1f kg   Last month: %d\n",
		ov.Stats.TotalAdoptions, ov.Stats.TotalTreesPlanted, ov.Stats.TotalCarbonAbsorbed, ov.Stats.LastMonthAdoptions)

	if len(ov.Adoptions) == 0 {
		buf.WriteString("You have not adopted a tree yet. Browse with `species` and `adopt <id>`.\n")
		a.printf("%s", buf.String())
		return nil
	}

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ADOPTION\tSPECIES\tTAG\tTREE\tSTATUS")
	for _, ad := range ov.Adoptions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ad.AdoptionID, ad.Species.Name, ad.NameOnTag, ad.Tree.SerialNumber, ad.Tree.Status)
	}
	_ = tw.Flush()
	a.printf("%s", buf.String())
	return nil
}

func (a *App) Adoption(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("adoption <id>")
	}
	d, err := a.dashboardService.Detail(ctx, args[0])
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s (%s)\n", d.Species.Name, d.Species.LatinName)
	fmt.Fprintf(&buf, "  tag:       %s\n", d.NameOnTag)
	fmt.Fprintf(&buf, "  adopted:   %s\n", d.AdoptedAt)
	fmt.Fprintf(&buf, "  tree:      %s (%s)\n", d.Tree.SerialNumber, d.Tree.Status)
	if d.Tree.Latitude != nil && d.Tree.Longitude != nil {
		fmt.Fprintf(&buf, "  location:  %s, %s\n", *d.Tree.Latitude, *d.Tree.Longitude)
	}
	if d.Tree.PlantedAt != nil {
		fmt.Fprintf(&buf, "  planted:   %s\n", *d.Tree.PlantedAt)
	}
	if d.CertificateURL != nil {
		fmt.Fprintf(&buf, "  certificate: %s\n", *d.CertificateURL)
	}
	a.printf("%s", buf.String())
	return nil
}
