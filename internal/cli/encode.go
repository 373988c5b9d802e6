package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvsweep/internal/config"
	"github.com/vvka-141/csvsweep/internal/files/header"
	"github.com/vvka-141/csvsweep/internal/registry"
)

var encodeFlags struct {
	yaml bool
	name string
}

var encodeCmd = &cobra.Command{
	Use:   "encode <token>...",
	Short: "Encode column names for use in a reference set",
	Long: `Encode prints the base64 form of each column name, one per line, after
trimming and lowercasing it the same way file headers are normalized.

With --yaml the tokens are printed as a reference_sets entry that can be
pasted into csvsweep.yaml.

Examples:
  csvsweep encode pid age gender
  csvsweep encode --yaml --name survey pid age gender bmi`,
	Args: RequireTokens,
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().BoolVar(&encodeFlags.yaml, "yaml", false, "Print a csvsweep.yaml reference_sets entry")
	encodeCmd.Flags().StringVar(&encodeFlags.name, "name", "custom", "Reference set name used with --yaml")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = header.Normalize(a)
	}
	tokens := registry.Encode(names)

	// Validate before printing so the output always loads.
	if _, err := registry.Decode(encodeFlags.name, tokens); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !encodeFlags.yaml {
		for _, t := range tokens {
			fmt.Fprintln(out, t)
		}
		return nil
	}

	data, err := config.Marshal(&config.FileConfig{
		ReferenceSets: []registry.Encoded{{Name: encodeFlags.name, Tokens: tokens}},
	})
	if err != nil {
		return fmt.Errorf("failed to render YAML: %w", err)
	}
	_, err = out.Write(data)
	return err
}
