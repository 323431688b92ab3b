package main

import (
	"fmt"
	"os"
	"path/filepath"

	cardbox "github.com/logicossoftware/go-cardbox"
	"github.com/spf13/cobra"
)

// NewUnpackCmd creates the unpack command.
func NewUnpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack <container>",
		Short: "Extract a container's members to a directory",
		Long: `Unpack extracts every member of a CardBox container to the output
directory. Members with unsafe names (absolute, non-normalized or escaping
the output directory) are refused.`,
		Args: cobra.ExactArgs(1),
		RunE: runUnpack,
	}
	cmd.Flags().StringP("out", "o", "out", "output directory")
	return cmd
}

func runUnpack(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")

	files, warns, err := cardbox.ExtractContainer(data)
	if err != nil {
		return err
	}
	printWarnings(cmd, warns)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for path, content := range files {
		if err := cardbox.ValidateMemberPath(path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", path, err)
			continue
		}
		dst := filepath.Join(outDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, content, 0o644); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", dst)
	}
	return nil
}
