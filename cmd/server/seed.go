package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the standard subscription plans",
	Long:  "Write the studio's standard personal and group plans under fixed IDs. Running it again overwrites them.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.close()

		n, err := a.catalog.Seed(ctx)
		if err != nil {
			return err
		}
		logrus.WithField("plans", n).Info("Seeding completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
