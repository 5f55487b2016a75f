package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/book"
)

func newPersonCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage people",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME...",
		Short: "Add people to the ledger",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBook(cmd, func(ctx context.Context, b *book.Book) error {
				for _, arg := range args {
					name, err := b.AddPerson(ctx, arg)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", name)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Remove a person and the expenses that depend on them",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBook(cmd, func(ctx context.Context, b *book.Book) error {
				removal, ok, err := b.RemovePerson(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !ok {
					fmt.Fprintf(out, "No person named %s\n", args[0])
					return nil
				}
				fmt.Fprintf(out, "Removed %s\n", removal.Name)
				if n := len(removal.DroppedExpenseIDs); n > 0 {
					fmt.Fprintf(out, "Deleted %d expense(s)\n", n)
				}
				if n := len(removal.StrippedExpenseIDs); n > 0 {
					fmt.Fprintf(out, "Updated %d expense(s)\n", n)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List people in insertion order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBook(cmd, func(ctx context.Context, b *book.Book) error {
				people, err := b.ListPeople(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(people) == 0 {
					fmt.Fprintln(out, "No participants yet.")
					return nil
				}
				for _, p := range people {
					fmt.Fprintln(out, p)
				}
				return nil
			})
		},
	})

	return cmd
}
