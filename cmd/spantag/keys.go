package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/spantag/internal/binder"
	"github.com/jask/spantag/internal/op"
)

// keysCmd validates the key configuration and prints every binding.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Validate key bindings and list them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := binder.New(cfg.Labels, cfg.Keys)
		if err != nil {
			return fmt.Errorf("key bindings: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), bindingTable(b.Bindings()))
		return nil
	},
}

func bindingTable(bs []binder.Binding) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEYS", "OPERATION", "GROUP")
	for _, b := range bs {
		shown := make([]string, len(b.Keys))
		for i, k := range b.Keys {
			shown[i] = binder.DisplayKey(k)
		}
		name := b.Operation.Kind.String()
		if b.Operation.Kind == op.KindLabel {
			name = b.Operation.Name
		}
		t.Row(strings.Join(shown, " "), name, b.Operation.Group)
	}
	return t.String()
}
