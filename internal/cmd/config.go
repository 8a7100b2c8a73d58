package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hoppxi/hkcheck/internal/manager"
)

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Write a config file with every default",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		force, _ := cmd.Flags().GetBool("force")

		data, err := yaml.Marshal(manager.DefaultSettings())
		if err != nil {
			return err
		}

		if out == "-" {
			_, err := os.Stdout.Write(data)
			return err
		}
		if out == "" {
			out = configPath
		}
		if out == "" {
			out = manager.DefaultConfigPath()
		}

		if _, err := os.Stat(out); err == nil && !force {
			reader := bufio.NewReader(os.Stdin)
			if !confirm(reader, fmt.Sprintf("%s already exists. Overwrite?", out)) {
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return err
		}
		fmt.Println("Config written to", out)
		return nil
	},
}

func confirm(r *bufio.Reader, message string) bool {
	fmt.Printf("%s (y/N): ", message)
	input, _ := r.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}

func init() {
	generateConfigCmd.Flags().StringP("output", "o", "", "Destination file, - for stdout (default: the config path)")
	generateConfigCmd.Flags().BoolP("force", "f", false, "Overwrite without asking")
}
