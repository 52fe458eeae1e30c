package cli

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/spectrokit/internal/validate"
	"github.com/spf13/cobra"
)

func (c *command) validateCommand() *cobra.Command {
	var paramsPath string
	cmd := &cobra.Command{
		Use:   "validate MODEL",
		Short: "Check a model specification, and optionally a parameter set against it.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			result, err := a.Validate(cmd.Context(), args[0], paramsPath)
			if err != nil {
				return err
			}
			fmt.Fprint(c.outW, validate.Report(result))
			if !result.Valid() {
				return &ExitError{Code: 1, Message: "validation failed"}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&paramsPath, "parameters", "p", "", "Parameter file to check the model's references against.")
	return cmd
}

func (c *command) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show MODEL",
		Short: "Print a markdown summary of a model specification.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			m, err := a.LoadModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(c.outW, m.String())
			return nil
		},
	}
}

func (c *command) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a model specification to another format, chosen by the OUT extension.",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			if err := a.Convert(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(c.outW, "Wrote %s\n", args[1])
			return nil
		},
	}
}

func (c *command) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered item categories and their types.",
		Args:  exactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			reg := a.Registry()
			for _, name := range reg.Categories() {
				info, _ := reg.Category(name)
				if !info.Typed {
					fmt.Fprintf(c.outW, "%s (untyped)\n", name)
					continue
				}
				fmt.Fprintf(c.outW, "%s: %s\n", name, strings.Join(reg.Tags(name), ", "))
			}
			fmt.Fprintf(c.outW, "\nFile formats: %s\n", strings.Join(a.Formats(), ", "))
			return nil
		},
	}
}
