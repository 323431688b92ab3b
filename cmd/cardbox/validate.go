package main

import (
	"fmt"
	"os"

	cardbox "github.com/logicossoftware/go-cardbox"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <container>",
		Short: "Decode a container and report every problem found",
		Long: `Validate decodes a CardBox container and reports all problems. With
--strict the first component-level problem fails validation, matching the
behavior callers get from strict decoding.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
	cmd.Flags().Bool("strict", false, "fail on the first component-level problem")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	strict, _ := cmd.Flags().GetBool("strict")

	doc, warns, err := cardbox.DecodeBytes(data, cardbox.WithStrict(strict))
	printWarnings(cmd, warns)
	if err != nil {
		return fmt.Errorf("invalid: %w", err)
	}

	cmd.Printf("valid: %s (%q), %d components, %d loaded, %d warnings\n",
		doc.Metadata.ID, doc.Metadata.Name, len(doc.Components), len(doc.Configs), len(warns))
	return nil
}
