package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"teamboard/cmd/teamboard/output"
	"teamboard/internal/application/dto"
	"teamboard/internal/dnd"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage the lists of a board",
	Long: `Manage the lists (columns) of a board.

Lists can be referred to by id, by a unique id prefix or by name.

Examples:
  # Show the lists of the current board
  teamboard list ls

  # Add a list at the end
  teamboard list add Review

  # Rename a list
  teamboard list rename Review "Code Review"

  # Make a list the first one
  teamboard list move "Code Review" --index 0`,
}

var listLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "Show the lists of a board",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}

		lists := board.Lists
		if formatter.Structured() {
			out := make([]dto.ListDTO, len(lists))
			for i, l := range lists {
				out[i] = l.WithoutCards()
			}
			return formatter.Print(out)
		}
		if formatter.Format() == output.FormatID {
			ids := make([]string, len(lists))
			for i, l := range lists {
				ids[i] = l.ID
			}
			return formatter.PrintIDs(ids)
		}

		rows := make([][]string, 0, len(lists))
		for i, l := range lists {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i),
				shortID(l.ID),
				l.Name,
				fmt.Sprintf("%d", len(l.Cards)),
			})
		}
		printer.Table([]string{"#", "ID", "Name", "Cards"}, rows)
		return nil
	},
}

var listAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a list to a board",
	Long: `Add a list to a board. By default the list goes last.

Examples:
  teamboard list add Review
  teamboard list add Backlog --index 0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}

		req := dto.CreateListRequest{Name: args[0]}
		if cmd.Flags().Changed("index") {
			index, _ := cmd.Flags().GetInt("index")
			pos, err := slotPosition(container.Coordinator.Lists().Items(board.ID), "", index)
			if err != nil {
				return err
			}
			req.Position = &pos
		}

		pending, pendingErr := container.Coordinator.CreateList(board.ID, req)
		out, err := commit(ctx, pending, pendingErr)
		if err != nil {
			return fmt.Errorf("failed to add list: %w", err)
		}
		if formatter.Format() == output.FormatID {
			return formatter.PrintIDs([]string{out.ConfirmedID})
		}
		printer.Success("Added list %s (%s)", args[0], shortID(out.ConfirmedID))
		return nil
	},
}

var listRenameCmd = &cobra.Command{
	Use:   "rename <list> <new-name>",
	Short: "Rename a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}
		list, err := resolveList(board, args[0])
		if err != nil {
			return err
		}

		name := args[1]
		pending, pendingErr := container.Coordinator.UpdateList(list.ID, dto.UpdateListRequest{Name: &name})
		if _, err := commit(ctx, pending, pendingErr); err != nil {
			return fmt.Errorf("failed to rename list: %w", err)
		}
		printer.Success("Renamed list %s to %s", list.Name, name)
		return nil
	},
}

var listMoveCmd = &cobra.Command{
	Use:   "move <list> --index <n>",
	Short: "Move a list to another place on its board",
	Long: `Move a list so that it ends up at the given 0-based index.

Examples:
  teamboard list move Done --index 0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}
		list, err := resolveList(board, args[0])
		if err != nil {
			return err
		}

		index, _ := cmd.Flags().GetInt("index")
		lists := container.Coordinator.Lists().Items(board.ID)
		source := indexOfList(lists, list.ID)
		if index < 0 || index >= len(lists) {
			return fmt.Errorf("index %d out of range, board has %d lists", index, len(lists))
		}

		pending, pendingErr := dnd.NewAdapter(container.Coordinator).DropList(board.ID, source, index)
		_, err = commit(ctx, pending, pendingErr)
		if errors.Is(err, dnd.ErrNoMove) {
			printer.Info("List %s is already at index %d", list.Name, index)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to move list: %w", err)
		}
		printer.Success("Moved list %s to index %d", list.Name, index)
		return nil
	},
}

var listDeleteCmd = &cobra.Command{
	Use:   "delete <list>",
	Short: "Delete a list and its cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}
		list, err := resolveList(board, args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if len(list.Cards) > 0 && !force {
			return fmt.Errorf("list %s has %d cards, use --force to delete it anyway", list.Name, len(list.Cards))
		}

		pending, pendingErr := container.Coordinator.DeleteList(list.ID)
		if _, err := commit(ctx, pending, pendingErr); err != nil {
			return fmt.Errorf("failed to delete list: %w", err)
		}
		printer.Success("Deleted list %s", list.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.AddCommand(listLsCmd)
	listCmd.AddCommand(listAddCmd)
	listCmd.AddCommand(listRenameCmd)
	listCmd.AddCommand(listMoveCmd)
	listCmd.AddCommand(listDeleteCmd)

	listAddCmd.Flags().IntP("index", "i", 0, "0-based index of the new list")
	listMoveCmd.Flags().IntP("index", "i", 0, "0-based target index")
	_ = listMoveCmd.MarkFlagRequired("index")
	listDeleteCmd.Flags().BoolP("force", "f", false, "Delete even if the list has cards")
}

// loadBoard fetches the selected board and seeds the coordinator with it
func loadBoard(ctx context.Context) (*dto.BoardDTO, error) {
	id, err := getBoardID(ctx)
	if err != nil {
		return nil, err
	}
	board, err := container.Coordinator.LoadBoard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return board, nil
}

func indexOfList(lists []dto.ListDTO, id string) int {
	for i, l := range lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}
