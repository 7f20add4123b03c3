// =============================================================================
// dzcb - Radios Command
// =============================================================================
//
// This file defines the 'radios' command, which lists the supported radios.
//
// COMMAND USAGE:
//   dzcb radios [--fields]
//
// OUTPUT:
//   878  Anytone 878UVii  CPS 1.21  136.000-174.000, 400.000-480.000 MHz
//   890  Anytone 890      Latest    136.000-174.000, 400.000-480.000 MHz
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mycodeplug/dzcb/internal/anytone"
)

func newRadiosCmd() *cobra.Command {
	var fields bool

	radiosCmd := &cobra.Command{
		Use:   "radios",
		Short: "List the supported radios",
		Long:  `List the supported radios, their CPS version and frequency bands.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRadios(cmd.OutOrStdout(), fields)
		},
	}
	radiosCmd.Flags().BoolVar(&fields, "fields", false, "Also list the columns of every CPS file")
	return radiosCmd
}

func listRadios(out io.Writer, fields bool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range anytone.Radios() {
		bands := make([]string, 0, len(r.Bands))
		for _, b := range r.Bands {
			bands = append(bands, fmt.Sprintf("%.3f-%.3f", b.Low, b.High))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s MHz\n", r.ID, r.Name, r.Version, strings.Join(bands, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if !fields {
		return nil
	}

	for _, r := range anytone.Radios() {
		for _, t := range []struct {
			name   string
			schema anytone.Schema
		}{
			{anytone.TableTalkgroups, r.Talkgroups},
			{anytone.TableChannels, r.Channels},
			{anytone.TableZones, r.Zones},
			{anytone.TableScanLists, r.ScanLists},
		} {
			fmt.Fprintf(out, "\n%s %s.CSV (%d columns)\n", r.ID, t.name, len(t.schema))
			for _, col := range t.schema.Header() {
				fmt.Fprintf(out, "  %s\n", col)
			}
		}
	}
	return nil
}
