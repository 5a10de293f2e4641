package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/readmate/readmate/internal/app"
	"github.com/readmate/readmate/internal/service"
	"github.com/readmate/readmate/internal/validation"
	"github.com/spf13/cobra"
)

func BooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the library",
	}

	cmd.AddCommand(booksListCmd())
	cmd.AddCommand(booksAddCmd())
	cmd.AddCommand(booksProgressCmd())
	cmd.AddCommand(booksStatusCmd())
	return cmd
}

func booksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List books, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				books, err := a.BookService.Books()
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), books)
				}

				tw := newTable(cmd.OutOrStdout(), table.Row{"ID", "Title", "Author", "Progress", "Status"})
				for _, b := range books {
					progress := fmt.Sprintf("%d/%d (%d%%)", b.CurrentPage, b.TotalPages, b.Percent())
					tw.AppendRow(table.Row{b.ID, b.Title, b.Author, progress, b.Status})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func booksAddCmd() *cobra.Command {
	var params service.CreateBookParams
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Title = args[0]
			return withApp(func(a *app.App) error {
				book, err := a.BookService.Create(params)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), book)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", book.Title, book.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&params.Author, "author", "", "author")
	cmd.Flags().IntVar(&params.TotalPages, "pages", 0, "total pages")
	cmd.Flags().StringVar(&params.CoverURL, "cover", "", "cover image URL")
	cmd.Flags().StringVar(&params.StartDate, "started", "", "start date (YYYY-MM-DD)")
	return cmd
}

func booksProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id> <page>",
		Short: "Set the current page; the change counts toward active goals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := validation.CoerceInt(args[1])
			return withApp(func(a *app.App) error {
				book, err := a.BookService.UpdateProgress(args[0], page)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), book)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: page %d of %d (%d%%)\n", book.Title, book.CurrentPage, book.TotalPages, book.Percent())
				return nil
			})
		},
	}
}

func booksStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "status <id> <reading|completed|dropped>",
		Short:     "Set the reading status of a book",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"reading", "completed", "dropped"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				book, err := a.BookService.UpdateStatus(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", book.Title, book.Status)
				return nil
			})
		},
	}
}
