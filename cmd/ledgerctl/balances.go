package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/services"
	"github.com/GregMSThompson/ledger-backend/internal/store"
)

func balancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Print derived account balances for a user",
		RunE:  runBalances,
	}
	cmd.Flags().String("uid", "", "user id")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

func runBalances(cmd *cobra.Command, _ []string) error {
	uid, _ := cmd.Flags().GetString("uid")

	ctx, cfg, bs, err := openData(cmd)
	if err != nil {
		return err
	}
	defer bs.Close()

	categories := services.NewCategoryService(store.NewCategoryStore(bs.Firestore))
	summary := services.NewSummaryService(store.NewAccountStore(bs.Firestore), store.NewTransactionStore(bs.Firestore), categories, cfg.Location)

	snap, err := summary.Snapshot(ctx, uid)
	if err != nil {
		return err
	}
	return printBalances(cmd.OutOrStdout(), snap)
}

func printBalances(w io.Writer, snap dto.LedgerSnapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ACCOUNT\tTYPE\tBALANCE\t")
	for _, b := range snap.Balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", b.Name, b.Type, b.Balance.StringFixed(2))
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\t\n", snap.TotalAssets.StringFixed(2))
	return tw.Flush()
}
