package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/ledger-backend/internal/migration"
	"github.com/GregMSThompson/ledger-backend/internal/store"
)

func migrateLegacyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate-legacy",
		Short: "Copy legacy expenses and incomes into transactions",
		Long: `Reads the user's legacy expenses and incomes collections and writes them
into the transactions collection. Transfer legs are paired and linked.

The legacy collections are not modified. Running it twice overwrites the
same documents.`,
		RunE: runMigrateLegacy,
	}
	cmd.Flags().String("uid", "", "user id")
	cmd.Flags().Bool("dry-run", false, "convert and report without writing")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

func runMigrateLegacy(cmd *cobra.Command, _ []string) error {
	uid, _ := cmd.Flags().GetString("uid")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ctx, _, bs, err := openData(cmd)
	if err != nil {
		return err
	}
	defer bs.Close()

	report, err := migration.New(store.NewLegacyStore(bs.Firestore)).Run(ctx, uid, dryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "expenses:  %d\n", report.Expenses)
	fmt.Fprintf(out, "incomes:   %d\n", report.Incomes)
	fmt.Fprintf(out, "transfers: %d (unpaired legs: %d)\n", report.Transfers, report.Unpaired)
	if report.DryRun {
		fmt.Fprintln(out, "dry run, nothing written")
		return nil
	}
	fmt.Fprintf(out, "written:   %d\n", report.Written)
	return nil
}
