package main

import (
	"github.com/spf13/cobra"

	"github.com/git-pkgs/audit"
	"github.com/git-pkgs/audit/internal/config"
	"github.com/git-pkgs/audit/npm"
)

// runOptions are the flags shared by the old and deprecated commands.
// Flags left unset fall back to the project's .audit.yaml.
type runOptions struct {
	path       string
	workspaces []string
	registry   string
	prodOnly   bool
	format     string
}

func (o *runOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.path, "path", "p", ".", "path to the manifest root")
	cmd.Flags().StringArrayVarP(&o.workspaces, "workspace", "w", nil, "workspace to audit (repeatable; default: the root manifest's workspaces)")
	cmd.Flags().StringVar(&o.registry, "registry", "", "npm registry base URL")
	cmd.Flags().BoolVar(&o.prodOnly, "prod-only", false, "skip development dependencies")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: text or json")
}

// load merges flags with the project config and resolves the workspaces'
// installed dependencies.
func (o *runOptions) load() (*config.Config, []audit.Workspace, *npm.Registry, error) {
	cfg, err := config.Load(o.path)
	if err != nil {
		return nil, nil, nil, err
	}

	if o.registry == "" {
		o.registry = cfg.Registry
	}
	if o.format == "" {
		o.format = cfg.Output.Format
	}

	names := o.workspaces
	if names == nil && len(cfg.Workspaces) > 0 {
		names = cfg.Workspaces
	}

	workspaces, err := audit.LoadWorkspaces(o.path, names)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, workspaces, npm.New(o.registry, nil), nil
}
