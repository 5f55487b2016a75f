package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/book"
	"github.com/mmynk/splitledger/internal/calculator"
)

func newBalancesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show balances and the payments that settle them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBook(cmd, func(ctx context.Context, b *book.Book) error {
				result, err := b.Recompute(ctx)
				if err != nil {
					return err
				}
				writeResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
}

func writeResult(w io.Writer, result calculator.Result) {
	fmt.Fprintln(w, "Balances:")
	if len(result.Balances) == 0 {
		fmt.Fprintln(w, "No participants yet.")
	}
	for _, mb := range result.Balances {
		status := "is owed"
		if mb.NetBalance.IsNegative() {
			status = "owes"
		}
		fmt.Fprintf(w, "%s: %s %s\n", mb.MemberName, status, mb.NetBalance.Abs().StringFixed(2))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settlements:")
	if result.NoSettlementsNeeded() {
		fmt.Fprintln(w, "No settlements needed.")
		return
	}
	for _, s := range result.Settlements {
		fmt.Fprintf(w, "%s -> %s: %s\n", s.From, s.To, s.Amount.StringFixed(2))
	}
}
