package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"teamboard/cmd/teamboard/output"
	"teamboard/internal/application/dto"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
	Long: `Manage boards - list, view, create and delete them.

A board is an ordered set of lists, each holding an ordered set of cards.

Examples:
  # List all boards
  teamboard board list

  # Show a board with its lists and cards
  teamboard board show team-board

  # Create a board with custom lists
  teamboard board create "Team Board" --lists "Backlog,Doing,Review,Done"

  # Delete a board
  teamboard board delete team-board --force`,
}

var boardListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all boards",
	Long: `List all boards known to the daemon.

Examples:
  # List boards in text format
  teamboard board list

  # List boards in JSON format
  teamboard board list --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		boards, err := container.Client.ListBoards(ctx)
		if err != nil {
			return fmt.Errorf("failed to list boards: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(boards)
		}
		if formatter.Format() == output.FormatID {
			ids := make([]string, len(boards))
			for i, b := range boards {
				ids[i] = b.ID
			}
			return formatter.PrintIDs(ids)
		}

		if len(boards) == 0 {
			printer.Info("No boards found. Create one with: teamboard board create <name>")
			return nil
		}

		rows := make([][]string, 0, len(boards))
		for _, b := range boards {
			rows = append(rows, []string{
				b.ID,
				b.Name,
				truncate(b.Description, 50),
				fmt.Sprintf("%d", b.ListCount),
				fmt.Sprintf("%d", b.CardCount),
			})
		}
		printer.Table([]string{"ID", "Name", "Description", "Lists", "Cards"}, rows)
		return nil
	},
}

var boardShowCmd = &cobra.Command{
	Use:   "show [board-id]",
	Short: "Show a board",
	Long: `Show a board with its lists and cards in order.

Without an argument the board selected by --board-id (or the first board)
is shown.

Examples:
  teamboard board show team-board
  teamboard board show --output yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		id := boardID
		if len(args) == 1 {
			id = args[0]
		}
		if id == "" {
			var err error
			if id, err = getBoardID(ctx); err != nil {
				return err
			}
		}

		board, err := container.Client.GetBoard(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}
		if formatter.Structured() {
			return formatter.Print(board)
		}

		printBoard(board)
		return nil
	},
}

var boardCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new board",
	Long: `Create a new board. Its id is derived from the name.

New boards get the lists Todo, In Progress and Done unless --lists is set.

Examples:
  teamboard board create "Team Board"
  teamboard board create "Release" --description "v2 release" --lists "Open,Fixing,Verified"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		description, _ := cmd.Flags().GetString("description")
		listsStr, _ := cmd.Flags().GetString("lists")

		req := dto.CreateBoardRequest{Name: args[0], Description: description}
		if listsStr != "" {
			for _, name := range strings.Split(listsStr, ",") {
				if name = strings.TrimSpace(name); name != "" {
					req.Lists = append(req.Lists, name)
				}
			}
		}

		board, err := container.Client.CreateBoard(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create board: %w", err)
		}
		if formatter.Structured() {
			return formatter.Print(board)
		}
		if formatter.Format() == output.FormatID {
			return formatter.PrintIDs([]string{board.ID})
		}

		printer.Success("Created board: %s (%s)", board.Name, board.ID)
		printer.Info("Created %d lists", len(board.Lists))
		return nil
	},
}

var boardDeleteCmd = &cobra.Command{
	Use:   "delete <board-id>",
	Short: "Delete a board",
	Long: `Delete a board with all its lists and cards.

WARNING: This action cannot be undone.

Examples:
  # Delete a board (with confirmation prompt)
  teamboard board delete team-board

  # Delete a board without confirmation
  teamboard board delete team-board --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		id := args[0]
		force, _ := cmd.Flags().GetBool("force")

		board, err := container.Client.GetBoard(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}

		if !force {
			printer.Warning("About to delete board '%s' with %d lists and %d cards", board.Name, len(board.Lists), countCards(board))
			fmt.Print("Type the board ID to confirm: ")
			confirmation, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(confirmation) != id {
				printer.Info("Deletion cancelled")
				return nil
			}
		}

		if err := container.Client.DeleteBoard(ctx, id); err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		printer.Success("Deleted board: %s", board.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardCreateCmd)
	boardCmd.AddCommand(boardDeleteCmd)

	boardCreateCmd.Flags().StringP("description", "d", "", "Board description")
	boardCreateCmd.Flags().StringP("lists", "l", "", "Comma-separated initial lists")

	boardDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
}

func printBoard(board *dto.BoardDTO) {
	printer.Header("%s", board.Name)
	if board.Description != "" {
		printer.Subtle("%s", board.Description)
	}
	printer.Println("")

	for _, l := range board.Lists {
		printer.Bold("%s (%d)", l.Name, len(l.Cards))
		if len(l.Cards) == 0 {
			printer.Subtle("  no cards")
			printer.Println("")
			continue
		}
		rows := make([][]string, 0, len(l.Cards))
		for _, c := range l.Cards {
			rows = append(rows, cardRow(c))
		}
		printer.Table(cardHeaders, rows)
		printer.Println("")
	}
}

func countCards(board *dto.BoardDTO) int {
	n := 0
	for _, l := range board.Lists {
		n += len(l.Cards)
	}
	return n
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
