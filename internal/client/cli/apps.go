package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// List prints the catalog as an id / name / icon table.
func (a *App) List(ctx context.Context) error {
	apps, err := a.client.ListApps(ctx)
	if err != nil {
		a.report("list", err)
		return err
	}

	if len(apps) == 0 {
		fmt.Fprintln(a.out, "No apps available")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tICON")
	for _, app := range apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", app.ID, app.DisplayName, app.IconPath)
	}
	return tw.Flush()
}

// Open resolves id to its launch target and prints it. Starting the target
// is left to the host.
func (a *App) Open(ctx context.Context, id string) error {
	app, err := a.client.OpenApp(ctx, id)
	if err != nil {
		a.report("open", err)
		return err
	}

	fmt.Fprintf(a.out, "%s: %s\n", app.DisplayName, app.LaunchTarget)
	return nil
}
