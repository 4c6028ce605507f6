package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/ledger-backend/internal/ledger"
	"github.com/GregMSThompson/ledger-backend/internal/models"
	"github.com/GregMSThompson/ledger-backend/internal/store"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the default categories for a user",
		Long: `Seeds the default expense and/or income categories for a user.

A kind that already has categories, or was seeded before, is left alone.`,
		RunE: runSeed,
	}
	cmd.Flags().String("uid", "", "user id")
	cmd.Flags().String("kind", "all", "expense, income or all")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

func seedKinds(kind string) ([]models.Kind, error) {
	switch kind {
	case "all", "":
		return []models.Kind{models.KindExpense, models.KindIncome}, nil
	case string(models.KindExpense), string(models.KindIncome):
		return []models.Kind{models.Kind(kind)}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	uid, _ := cmd.Flags().GetString("uid")
	kindFlag, _ := cmd.Flags().GetString("kind")
	kinds, err := seedKinds(kindFlag)
	if err != nil {
		return err
	}

	ctx, _, bs, err := openData(cmd)
	if err != nil {
		return err
	}
	defer bs.Close()

	cats := store.NewCategoryStore(bs.Firestore)
	for _, kind := range kinds {
		seeded, err := cats.SeedDefaults(ctx, uid, kind, ledger.DefaultCategories(kind), time.Now())
		if err != nil {
			return fmt.Errorf("seed %s categories: %w", kind, err)
		}
		if seeded {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: seeded %d categories\n", kind, len(ledger.DefaultCategories(kind)))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: already seeded\n", kind)
		}
	}
	return nil
}
