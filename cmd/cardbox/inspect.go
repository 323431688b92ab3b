package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	cardbox "github.com/logicossoftware/go-cardbox"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <container>",
		Short: "Show a container's members, metadata and components",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().Bool("members", false, "list raw archive members instead of the assembled document")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	membersOnly, _ := cmd.Flags().GetBool("members")
	if membersOnly {
		files, warns, err := cardbox.ExtractContainer(data)
		if err != nil {
			return err
		}
		printMembers(cmd, files)
		printWarnings(cmd, warns)
		return nil
	}

	doc, warns, err := cardbox.DecodeBytes(data)
	if err != nil {
		printWarnings(cmd, warns)
		return err
	}

	out, err := yaml.Marshal(newMetadataView(doc.Metadata))
	if err != nil {
		return err
	}
	cmd.Print(string(out))

	rows := make([][]string, 0, len(doc.Components))
	for _, ref := range doc.Components {
		loaded := "no"
		if _, ok := doc.Configs[ref.ID]; ok {
			loaded = "yes"
		}
		rows = append(rows, []string{ref.ID, ref.Type, loaded})
	}
	cmd.Println(renderTable([]string{"ID", "TYPE", "LOADED"}, rows))
	printWarnings(cmd, warns)
	return nil
}

func printMembers(cmd *cobra.Command, files map[string][]byte) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	rows := make([][]string, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, []string{p, strconv.Itoa(len(files[p]))})
	}
	cmd.Println(renderTable([]string{"PATH", "BYTES"}, rows))
}

func printWarnings(cmd *cobra.Command, warns []cardbox.Warning) {
	for _, w := range warns {
		if w.ComponentID != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: component %s: %s\n", w.ComponentID, w.Reason)
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", w.Path, w.Reason)
	}
}

func newMetadataView(m cardbox.Metadata) metadataView {
	return metadataView{
		ID:            m.ID,
		Name:          m.Name,
		FormatVersion: m.FormatVersion,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		ModifiedAt:    m.ModifiedAt.Format(time.RFC3339),
		ThemeID:       m.ThemeID,
		Tags:          m.Tags,
		Description:   m.Description,
	}
}

// metadataView shapes document metadata for YAML output.
type metadataView struct {
	ID            string   `yaml:"card_id"`
	Name          string   `yaml:"name"`
	FormatVersion string   `yaml:"format_version"`
	CreatedAt     string   `yaml:"created_at"`
	ModifiedAt    string   `yaml:"modified_at"`
	ThemeID       string   `yaml:"theme_id,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
	Description   string   `yaml:"description,omitempty"`
}
