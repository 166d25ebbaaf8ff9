// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pagecraft/internal/generator"
	"pagecraft/internal/store"
)

var (
	genFlags    templateFlags
	genSession  string
	genProvider string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a template through the full tier chain",
	Long: `Generate runs the primary remote model, then the secondary model with a
simpler prompt, then the local synthesizer, stopping at the first tier that
returns a document. With --session the configuration saved for that
visitor session is used instead of the flags. --provider overrides the
active provider for tiers that name none.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tc, err := genFlags.config()
		if err != nil {
			return err
		}

		if genSession != "" {
			b, err := connect(cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			configs, err := b.configStore(cfg)
			if err != nil {
				return err
			}
			tc = store.Bind(configs, genSession).Get(cmd.Context())
		}

		reg := newRegistry(cfg)
		if genProvider != "" {
			if err := reg.SetActive(genProvider); err != nil {
				return err
			}
		}
		orch := generator.New(newChain(cfg, reg), generator.WithModerator(reg))

		res, err := orch.Generate(cmd.Context(), tc)
		if err != nil {
			return err
		}

		for _, f := range res.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "tier %s failed: %s\n", f.Tier, f.Error)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "generated by %s (%s) in %s\n", res.Tier, res.Model, res.Duration.Round(time.Millisecond))

		return genFlags.write(cmd.OutOrStdout(), res.Document)
	},
}

func init() {
	genFlags.register(generateCmd)
	generateCmd.Flags().StringVar(&genSession, "session", "", "use the configuration stored for this session id")
	generateCmd.Flags().StringVar(&genProvider, "provider", "", "active ai provider (openai, mistral, claude, gemini)")
	rootCmd.AddCommand(generateCmd)
}
