package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nmaptor/nmaptor/pkg/appctx"
)

// toolView is the serializable shape of one catalog entry.
type toolView struct {
	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description" yaml:"description"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// NewToolsCommand returns the command listing the operation catalog.
func NewToolsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the available scan operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, ok := appctx.ConfigFrom(cmd.Context())
			if !ok {
				return fmt.Errorf("configuration not initialized")
			}

			_, reg := buildService(manager.Get())

			views := make([]toolView, 0, len(reg.Definitions()))
			for _, def := range reg.Definitions() {
				views = append(views, toolView{
					Name:           def.Name,
					Description:    def.Description,
					TimeoutSeconds: int(def.Timeout / time.Second),
				})
			}

			switch output {
			case "json":
				data, err := json.MarshalIndent(views, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
			case "yaml":
				data, err := yaml.Marshal(views)
				if err != nil {
					return err
				}
				cmd.Print(string(data))
			case "text":
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tTIMEOUT\tDESCRIPTION")
				for _, v := range views {
					fmt.Fprintf(w, "%s\t%ds\t%s\n", v.Name, v.TimeoutSeconds, v.Description)
				}
				return w.Flush()
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}
