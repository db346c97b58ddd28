package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"f2bsentinel/internal/app"
	"f2bsentinel/internal/enrich"
	"f2bsentinel/internal/fail2ban"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func newStatusCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "status [jail...]",
		Short: "Print the jails and their banned addresses",
		Long: `Reads every jail once and prints the result. When jail names are given
only those jails are printed.

Output formats:
  table  a summary of all jails plus one table of addresses per jail
  json   the snapshot as JSON
  yaml   the snapshot as YAML`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, args, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")
	return cmd
}

func runStatus(cmd *cobra.Command, jails []string, output string) error {
	switch output {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q, want table, json or yaml", output)
	}

	application, err := app.NewApplication(newAppConfig())
	if err != nil {
		return err
	}
	defer application.Close()

	snap, err := application.Client().Fetch(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("fail2ban-client failed: %w", err)
	}
	if snap, err = selectJails(snap, jails); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch output {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	}
	renderStatus(out, snap, application.Enricher())
	return nil
}

// selectJails keeps the named jails in the order given.
func selectJails(snap fail2ban.Snapshot, names []string) (fail2ban.Snapshot, error) {
	if len(names) == 0 {
		return snap, nil
	}
	selected := make([]fail2ban.JailState, 0, len(names))
	for _, name := range names {
		j := snap.Jail(name)
		if j == nil {
			return snap, fmt.Errorf("jail not found: %s", name)
		}
		selected = append(selected, *j)
	}
	snap.Jails = selected
	return snap, nil
}

func header(s string) string {
	return text.FgHiCyan.Sprint(s)
}

func renderStatus(w io.Writer, snap fail2ban.Snapshot, enricher *enrich.Enricher) {
	if len(snap.Jails) == 0 {
		fmt.Fprintln(w, text.FgYellow.Sprint("No jails reported by fail2ban-client"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{header("Jail"), header("Banned"), header("Total"), header("Ban time"), header("Find time"), header("Max retry")})
	for _, j := range snap.Jails {
		t.AppendRow(table.Row{
			j.Name,
			len(j.Bans),
			fail2ban.FormatCount(j.TotalBanned),
			j.Bantime.Display(),
			j.Findtime.Display(),
			fail2ban.FormatCount(j.MaxRetry),
		})
	}
	t.AppendFooter(table.Row{"Total", snap.TotalBanned()})
	t.Render()

	for i := range snap.Jails {
		j := &snap.Jails[i]
		if len(j.Bans) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", text.FgHiBlue.Sprintf("%s (%d)", j.Name, len(j.Bans)))
		renderBans(w, j, enricher)
	}
}

func renderBans(w io.Writer, j *fail2ban.JailState, enricher *enrich.Enricher) {
	geo := enricher.Enabled()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	hdr := table.Row{header("Address"), header("Time left"), header("Expires")}
	if geo {
		hdr = append(hdr, header("Country"), header("ASN"))
	}
	t.AppendHeader(hdr)

	for _, b := range j.Bans {
		row := table.Row{b.IP, b.TimeLeftLabel(), formatExpiry(b.ExpiryEpoch)}
		if geo {
			r := enricher.Lookup(b.IP)
			row = append(row, dashIfEmpty(r.Country), formatASN(r))
		}
		t.AppendRow(row)
	}
	t.Render()
}

func formatExpiry(epoch *int64) string {
	if epoch == nil {
		return text.FgHiBlack.Sprint("-")
	}
	return time.Unix(*epoch, 0).Local().Format("2006-01-02 15:04:05")
}

func formatASN(r enrich.Result) string {
	if r.ASN == 0 {
		return text.FgHiBlack.Sprint("-")
	}
	if r.ASNName == "" {
		return fmt.Sprintf("AS%d", r.ASN)
	}
	return fmt.Sprintf("AS%d %s", r.ASN, r.ASNName)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return text.FgHiBlack.Sprint("-")
	}
	return s
}
