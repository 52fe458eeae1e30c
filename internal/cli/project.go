package cli

import (
	"fmt"

	"github.com/specialistvlad/spectrokit/internal/project"
	"github.com/spf13/cobra"
)

func (c *command) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage a project folder of models and parameter sets.",
	}
	cmd.AddCommand(c.projectInitCommand(), c.projectListCommand(), c.projectGenerateCommand())
	return cmd
}

func (c *command) projectInitCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Create a new project in DIR, or in the --project folder.",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			dir := a.Config().ProjectPath
			if len(args) == 1 {
				dir = args[0]
			}
			p, err := project.Create(cmd.Context(), dir, name, a)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.outW, "Created project '%s' in %s\n", p.Name, p.Folder())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name. Defaults to the folder name.")
	return cmd
}

func (c *command) projectListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the models and parameter sets of the project.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			p, err := project.Open(cmd.Context(), a.Config().ProjectPath, a)
			if err != nil {
				return err
			}
			models, err := p.ModelNames()
			if err != nil {
				return err
			}
			params, err := p.ParameterNames()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.outW, "Project: %s (version %s)\n", p.Name, p.Version)
			writeList(c, "Models", models)
			writeList(c, "Parameters", params)
			return nil
		},
	}
}

func (c *command) projectGenerateCommand() *cobra.Command {
	var name, format string
	cmd := &cobra.Command{
		Use:   "generate-parameters MODEL",
		Short: "Write a parameter set covering every parameter the model references.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			p, err := project.Open(cmd.Context(), a.Config().ProjectPath, a)
			if err != nil {
				return err
			}
			path, err := p.GenerateParameters(cmd.Context(), args[0], name, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.outW, "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name of the parameter set. Defaults to MODEL_parameters.")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv, yml or yaml.")
	return cmd
}

func writeList(c *command, title string, names []string) {
	fmt.Fprintf(c.outW, "%s:\n", title)
	if len(names) == 0 {
		fmt.Fprintln(c.outW, "  (none)")
		return
	}
	for _, n := range names {
		fmt.Fprintf(c.outW, "  - %s\n", n)
	}
}
