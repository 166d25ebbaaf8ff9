// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pagecraft/internal/models"
	"pagecraft/internal/synth"
)

// templateFlags are the configuration flags shared by synthesize and
// generate.
type templateFlags struct {
	siteType string
	name     string
	styling  string
	features []string
	out      string
}

func (f *templateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.siteType, "type", "t", "", "site type (portfolio, blog, docs, landing, ecommerce, resume, wiki)")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "site name")
	cmd.Flags().StringVarP(&f.styling, "styling", "s", "", "styling preset (minimal, modern, classic, creative)")
	cmd.Flags().StringSliceVarP(&f.features, "feature", "f", nil, "feature id, repeatable")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file (default stdout)")
}

// config validates the flags and builds a TemplateConfig through the same
// feature-set operations the panel uses.
func (f *templateFlags) config() (models.TemplateConfig, error) {
	cfg := models.EmptyConfig()

	if f.siteType != "" && !models.ValidSiteType(models.SiteType(f.siteType)) {
		return cfg, fmt.Errorf("unknown site type %q", f.siteType)
	}
	if f.styling != "" && !models.ValidStyling(models.Styling(f.styling)) {
		return cfg, fmt.Errorf("unknown styling %q", f.styling)
	}

	cfg.Type = models.SiteType(f.siteType)
	cfg.Name = f.name
	cfg.Styling = models.Styling(f.styling)

	for _, id := range f.features {
		next, err := cfg.WithFeature(models.Feature(id))
		if err != nil {
			return cfg, fmt.Errorf("feature %q: %w", id, err)
		}
		cfg = next
	}
	return cfg, nil
}

// write sends doc to the output file or stdout.
func (f *templateFlags) write(stdout io.Writer, doc string) error {
	if f.out == "" {
		_, err := io.WriteString(stdout, doc)
		return err
	}
	if err := os.WriteFile(f.out, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", f.out, err)
	}
	return nil
}

var synthFlags templateFlags

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Render a template locally without any remote call",
	Example: `  pagecraft synthesize --type portfolio --name "Ada Lovelace" -f dark-mode -f responsive -o index.html`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := synthFlags.config()
		if err != nil {
			return err
		}
		return synthFlags.write(cmd.OutOrStdout(), synth.Synthesize(cfg))
	},
}

func init() {
	synthFlags.register(synthesizeCmd)
	rootCmd.AddCommand(synthesizeCmd)
}
