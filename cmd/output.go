package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mattsolo1/grove-shellnav/pkg/location"
)

// locationView is the printed form of a Location.
type locationView struct {
	Name      string   `json:"name"`
	Label     string   `json:"label,omitempty"`
	ParseName string   `json:"parse_name,omitempty"`
	Path      string   `json:"path,omitempty"`
	Special   string   `json:"special,omitempty"`
	Flags     []string `json:"flags,omitempty"`
	ID        string   `json:"id,omitempty"`
}

func viewOf(l *location.Location) locationView {
	v := locationView{
		Name:      l.Name,
		Label:     l.Label,
		ParseName: l.ParseName,
		Path:      l.FileSystemPath,
		Special:   l.SpecialPathID,
		Flags:     l.Flags.Names(),
	}
	if id, ok := l.FullID(); ok {
		v.ID = id.Key()
	}
	return v
}

func viewsOf(locs []*location.Location) []locationView {
	out := make([]locationView, len(locs))
	for i, l := range locs {
		out[i] = viewOf(l)
	}
	return out
}

func outputJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printLocationsTable(w io.Writer, locs []*location.Location) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL\tPATH\tSPECIAL\tFLAGS")
	for _, l := range locs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			l.Name,
			l.Label,
			dash(l.FileSystemPath),
			dash(l.SpecialPathID),
			dash(strings.Join(l.Flags.Names(), ",")),
		)
	}
	return tw.Flush()
}

func printLocationDetail(w io.Writer, l *location.Location) error {
	v := viewOf(l)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", v.Name)
	fmt.Fprintf(tw, "Label:\t%s\n", v.Label)
	fmt.Fprintf(tw, "Parse name:\t%s\n", dash(v.ParseName))
	fmt.Fprintf(tw, "Path:\t%s\n", dash(v.Path))
	fmt.Fprintf(tw, "Special:\t%s\n", dash(v.Special))
	fmt.Fprintf(tw, "Flags:\t%s\n", dash(strings.Join(v.Flags, ",")))
	fmt.Fprintf(tw, "ID:\t%s\n", dash(v.ID))
	return tw.Flush()
}

func printChain(w io.Writer, chain []*location.Location) error {
	if len(chain) == 0 {
		_, err := fmt.Fprintln(w, "Desktop")
		return err
	}
	names := make([]string, len(chain))
	for i, l := range chain {
		names[i] = l.DisplayName()
	}
	_, err := fmt.Fprintln(w, "Desktop > "+strings.Join(names, " > "))
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
