package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/book"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
)

func newExpenseCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage expenses",
	}
	cmd.AddCommand(newExpenseAddCommand(a), newExpenseRmCommand(a), newExpenseLsCommand(a))
	return cmd
}

func newExpenseAddCommand(a *app) *cobra.Command {
	var (
		description  string
		amount       string
		payer        string
		participants []string
		shares       map[string]string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Long: `Record an expense paid by one person and shared by the participants.

Without --share the amount is split equally. With --share every participant
needs an amount and the amounts must add up to the total.`,
		Example: `  splitctl expense add --desc Dinner --amount 90 --payer A --participants A,B,C
  splitctl expense add --amount 100 --payer A --participants A,B --share A=20,B=80`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := ledger.ParseAmount(amount)
			if err != nil {
				return err
			}
			in := ledger.ExpenseInput{
				Description:  description,
				Amount:       parsed,
				Payer:        payer,
				Participants: participants,
			}
			if len(shares) > 0 {
				in.RawShares = shares
			}

			return a.withBook(cmd, func(ctx context.Context, b *book.Book) error {
				expense, err := b.AddExpense(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added expense %s\n", expense.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description (default \"Expense\").")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Total amount, e.g. 90 or 12.50.")
	cmd.Flags().StringVarP(&payer, "payer", "p", "", "Name of the person who paid.")
	cmd.Flags().StringSliceVar(&participants, "participants", nil, "Comma-separated names sharing the expense.")
	cmd.Flags().StringToStringVar(&shares, "share", nil, "Custom split as NAME=AMOUNT pairs.")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("payer")
	return cmd
}

func newExpenseRmCommand(a *app) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:     "rm [ID]",
		Aliases: []string{"remove"},
		Short:   "Remove an expense by ID or by its number in 'expense ls'",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && index < 1 {
				return errors.New("give an expense ID or --index")
			}

			return a.withBook(cmd, func(ctx context.Context, b *book.Book) error {
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					ok, err := b.RemoveExpense(ctx, args[0])
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintf(out, "No expense with ID %s\n", args[0])
						return nil
					}
					fmt.Fprintf(out, "Removed expense %s\n", args[0])
					return nil
				}

				expense, ok, err := b.RemoveExpenseAt(ctx, index-1)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintf(out, "No expense number %d\n", index)
					return nil
				}
				fmt.Fprintf(out, "Removed expense %s\n", expense.ID)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "Number of the expense as shown by 'expense ls' (1-based).")
	return cmd
}

func newExpenseLsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List expenses in insertion order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBook(cmd, func(ctx context.Context, b *book.Book) error {
				expenses, err := b.ListExpenses(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(expenses) == 0 {
					fmt.Fprintln(out, "No expenses yet.")
					return nil
				}
				for i, e := range expenses {
					writeExpense(out, i+1, e)
				}
				return nil
			})
		},
	}
}

func writeExpense(w io.Writer, n int, e models.Expense) {
	var split string
	if e.IsCustomSplit() {
		parts := make([]string, len(e.Participants))
		for i, p := range e.Participants {
			parts[i] = fmt.Sprintf("%s:%s", p, e.Shares[p].StringFixed(2))
		}
		split = "Custom split: " + strings.Join(parts, ", ")
	} else {
		split = "Split: " + strings.Join(e.Participants, ", ") + " (equal)"
	}
	fmt.Fprintf(w, "%d. %s | %s | Payer: %s | %s | id: %s\n",
		n, e.Description, e.Amount.StringFixed(2), e.Payer, split, e.ID)
}
