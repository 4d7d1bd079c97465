package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"teamboard/cmd/teamboard/output"
	"teamboard/internal/application/dto"
	"teamboard/internal/dnd"
	"teamboard/internal/domain/entity"
	"teamboard/internal/domain/position"
	"teamboard/internal/store"
	"teamboard/pkg/markdown"
)

var cardHeaders = []string{"ID", "Title", "Priority", "Assignees", "Checklist"}

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards",
	Long: `Manage the cards of a board.

Cards can be referred to by id, by a unique id prefix (as shown by
"card ls") or by title. Commands taking a single card also read it from
piped input, so the output of "card ls" can be fed back in.

Examples:
  # List the cards of the Todo list
  teamboard card ls --list Todo

  # Create a card
  teamboard card create "Fix login bug" --list Todo --priority high --assignee ana

  # Tick the first checklist item
  teamboard card edit card-3f2a1b2c --done 1

  # Move a card above another one in a different list
  teamboard card move card-3f2a1b2c --to Doing --before card-9e01aa7d`,
}

var cardLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}

		lists := board.Lists
		if ref, _ := cmd.Flags().GetString("list"); ref != "" {
			l, err := resolveList(board, ref)
			if err != nil {
				return err
			}
			lists = []dto.ListDTO{*l}
		}

		var cards []dto.CardDTO
		for _, l := range lists {
			cards = append(cards, l.Cards...)
		}
		if formatter.Structured() {
			if cards == nil {
				cards = []dto.CardDTO{}
			}
			return formatter.Print(cards)
		}
		if formatter.Format() == output.FormatID {
			ids := make([]string, len(cards))
			for i, c := range cards {
				ids[i] = c.ID
			}
			return formatter.PrintIDs(ids)
		}

		if len(cards) == 0 {
			printer.Info("No cards found")
			return nil
		}
		headers := append([]string{"List"}, cardHeaders...)
		rows := make([][]string, 0, len(cards))
		for _, l := range lists {
			for _, c := range l.Cards {
				rows = append(rows, append([]string{l.Name}, cardRow(c)...))
			}
		}
		printer.Table(headers, rows)
		return nil
	},
}

var cardShowCmd = &cobra.Command{
	Use:   "show <card>",
	Short: "Show a card",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}
		card, list, err := resolveCard(board, args[0])
		if err != nil {
			return err
		}
		if formatter.Structured() {
			return formatter.Print(card)
		}

		printer.Header("%s", card.Title)
		printer.Println("ID:        %s", card.ID)
		printer.Println("List:      %s", list.Name)
		printer.Println("Priority:  %s", printer.Priority(card.Priority))
		if len(card.Assignees) > 0 {
			printer.Println("Assignees: %s", strings.Join(card.Assignees, ", "))
		}
		printer.Subtle("Created %s, modified %s", card.CreatedAt.Format("2006-01-02 15:04"), card.ModifiedAt.Format("2006-01-02 15:04"))

		if card.Description != "" {
			printer.Println("")
			width, _ := cmd.Flags().GetInt("width")
			printer.Raw(markdown.Render(card.Description, width))
		}
		if len(card.Checklist) > 0 {
			printer.Println("")
			printer.Bold("Checklist")
			for i, item := range card.Checklist {
				mark := " "
				if item.Done {
					mark = "x"
				}
				printer.Println("  %d. [%s] %s", i+1, mark, item.Text)
			}
		}
		return nil
	},
}

var cardCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a card",
	Long: `Create a card. Without --list the card goes into the first list, and
without --index it goes last.

Examples:
  teamboard card create "Write docs"
  teamboard card create "Fix login bug" --list Todo --priority high --index 0
  teamboard card create "Release" --check "tag" --check "changelog" --assignee ana,bo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}
		if len(board.Lists) == 0 {
			return fmt.Errorf("board %s has no lists", board.Name)
		}

		list := &board.Lists[0]
		if ref, _ := cmd.Flags().GetString("list"); ref != "" {
			if list, err = resolveList(board, ref); err != nil {
				return err
			}
		}

		description, _ := cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetString("priority")
		assignees, _ := cmd.Flags().GetStringSlice("assignee")
		checks, _ := cmd.Flags().GetStringArray("check")

		req := dto.CreateCardRequest{
			Title:       args[0],
			Description: description,
			Priority:    priority,
			Assignees:   assignees,
			Checklist:   checklist(checks),
		}
		if cmd.Flags().Changed("index") {
			index, _ := cmd.Flags().GetInt("index")
			pos, err := slotPosition(container.Coordinator.Cards().Items(list.ID), "", index)
			if err != nil {
				return err
			}
			req.Position = &pos
		}

		pending, pendingErr := container.Coordinator.CreateCard(list.ID, req)
		out, err := commit(ctx, pending, pendingErr)
		if err != nil {
			return fmt.Errorf("failed to create card: %w", err)
		}
		if formatter.Format() == output.FormatID {
			return formatter.PrintIDs([]string{out.ConfirmedID})
		}
		printer.Success("Created card %s in %s (%s)", args[0], list.Name, shortID(out.ConfirmedID))
		return nil
	},
}

var cardEditCmd = &cobra.Command{
	Use:   "edit <card>",
	Short: "Edit a card",
	Long: `Edit the fields of a card. Only the flags given are changed.

Examples:
  teamboard card edit card-3f2a --title "Fix SSO login" --priority critical
  teamboard card edit card-3f2a --assignee ana --assignee bo
  teamboard card edit card-3f2a --check "write test" --done 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}
		card, _, err := resolveCard(board, args[0])
		if err != nil {
			return err
		}

		req, err := editRequest(cmd, card)
		if err != nil {
			return err
		}
		pending, pendingErr := container.Coordinator.UpdateCard(card.ID, req)
		if _, err := commit(ctx, pending, pendingErr); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}
		printer.Success("Updated card %s", shortID(card.ID))
		return nil
	},
}

var cardMoveCmd = &cobra.Command{
	Use:   "move <card>",
	Short: "Move a card within or across lists",
	Long: `Move a card. The target list defaults to the card's own list; the place
in it is chosen with --index, --before or --after (default: last).

Examples:
  # Move to the end of Done
  teamboard card move card-3f2a --to Done

  # Reorder within the same list
  teamboard card move card-3f2a --index 0
  teamboard card move card-3f2a --after card-9e01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}
		card, from, err := resolveCard(board, args[0])
		if err != nil {
			return err
		}

		to := from
		if ref, _ := cmd.Flags().GetString("to"); ref != "" {
			if to, err = resolveList(board, ref); err != nil {
				return err
			}
		}

		cards := container.Coordinator.Cards()
		gesture := dnd.Gesture{
			SourceContainer: from.ID,
			SourceIndex:     indexOfCard(cards.Items(from.ID), card.ID),
			DestContainer:   to.ID,
		}
		gesture.DestIndex, err = destIndex(cmd, board, cards.Items(to.ID), card.ID)
		if err != nil {
			return err
		}

		pending, pendingErr := dnd.NewAdapter(container.Coordinator).DropCard(gesture)
		_, err = commit(ctx, pending, pendingErr)
		if errors.Is(err, dnd.ErrNoMove) {
			printer.Info("Card is already there")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to move card: %w", err)
		}
		printer.Success("Moved card %s to %s", shortID(card.ID), to.Name)
		return nil
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete <card>",
	Short: "Delete a card",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		board, err := loadBoard(ctx)
		if err != nil {
			return err
		}
		card, _, err := resolveCard(board, args[0])
		if err != nil {
			return err
		}

		pending, pendingErr := container.Coordinator.DeleteCard(card.ID)
		if _, err := commit(ctx, pending, pendingErr); err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
		printer.Success("Deleted card %s", card.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cardCmd)

	cardCmd.AddCommand(cardLsCmd)
	cardCmd.AddCommand(cardShowCmd)
	cardCmd.AddCommand(cardCreateCmd)
	cardCmd.AddCommand(cardEditCmd)
	cardCmd.AddCommand(cardMoveCmd)
	cardCmd.AddCommand(cardDeleteCmd)

	cardLsCmd.Flags().StringP("list", "l", "", "Only show cards of this list")

	cardShowCmd.Flags().IntP("width", "w", 80, "Wrap width for the description")

	cardCreateCmd.Flags().StringP("list", "l", "", "List to create the card in")
	cardCreateCmd.Flags().StringP("description", "d", "", "Card description (markdown)")
	cardCreateCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, critical")
	cardCreateCmd.Flags().StringSliceP("assignee", "a", nil, "Assignee (repeatable)")
	cardCreateCmd.Flags().StringArray("check", nil, "Checklist item (repeatable)")
	cardCreateCmd.Flags().IntP("index", "i", 0, "0-based index in the list")

	cardEditCmd.Flags().StringP("title", "t", "", "New title")
	cardEditCmd.Flags().StringP("description", "d", "", "New description (markdown)")
	cardEditCmd.Flags().StringP("priority", "p", "", "New priority")
	cardEditCmd.Flags().StringSliceP("assignee", "a", nil, "Replace assignees (repeatable)")
	cardEditCmd.Flags().StringArray("check", nil, "Append a checklist item (repeatable)")
	cardEditCmd.Flags().IntSlice("done", nil, "Mark checklist items done by 1-based number")
	cardEditCmd.Flags().IntSlice("undone", nil, "Mark checklist items not done by 1-based number")

	cardMoveCmd.Flags().String("to", "", "Target list (default: the card's list)")
	cardMoveCmd.Flags().IntP("index", "i", -1, "0-based index in the target list")
	cardMoveCmd.Flags().String("before", "", "Place above this card")
	cardMoveCmd.Flags().String("after", "", "Place below this card")
	cardMoveCmd.MarkFlagsMutuallyExclusive("index", "before", "after")
}

func cardRow(c dto.CardDTO) []string {
	checks := ""
	if len(c.Checklist) > 0 {
		done := 0
		for _, item := range c.Checklist {
			if item.Done {
				done++
			}
		}
		checks = fmt.Sprintf("%d/%d", done, len(c.Checklist))
	}
	priority := c.Priority
	if priority == string(entity.PriorityNone) {
		priority = ""
	}
	return []string{
		shortID(c.ID),
		truncate(c.Title, 60),
		printer.Priority(priority),
		strings.Join(c.Assignees, ","),
		checks,
	}
}

func checklist(texts []string) []entity.ChecklistItem {
	if len(texts) == 0 {
		return nil
	}
	items := make([]entity.ChecklistItem, 0, len(texts))
	for _, t := range texts {
		items = append(items, entity.ChecklistItem{Text: t})
	}
	return items
}

// editRequest builds an update from the flags the user actually set
func editRequest(cmd *cobra.Command, card *dto.CardDTO) (dto.UpdateCardRequest, error) {
	var req dto.UpdateCardRequest
	flags := cmd.Flags()

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		req.Title = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		req.Description = &v
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		req.Priority = &v
	}
	if flags.Changed("assignee") {
		v, _ := flags.GetStringSlice("assignee")
		req.Assignees = &v
	}

	if flags.Changed("check") || flags.Changed("done") || flags.Changed("undone") {
		items := append([]entity.ChecklistItem(nil), card.Checklist...)
		checks, _ := flags.GetStringArray("check")
		items = append(items, checklist(checks)...)

		done, _ := flags.GetIntSlice("done")
		undone, _ := flags.GetIntSlice("undone")
		for _, set := range []struct {
			nums []int
			done bool
		}{{done, true}, {undone, false}} {
			for _, n := range set.nums {
				if n < 1 || n > len(items) {
					return req, fmt.Errorf("checklist item %d does not exist", n)
				}
				items[n-1].Done = set.done
			}
		}
		req.Checklist = &items
	}

	if req == (dto.UpdateCardRequest{}) {
		return req, errors.New("nothing to change, see --help for the editable fields")
	}
	return req, nil
}

// destIndex turns --index/--before/--after into an index counted without
// the moving card
func destIndex(cmd *cobra.Command, board *dto.BoardDTO, dest []dto.CardDTO, cardID string) (int, error) {
	others := make([]dto.CardDTO, 0, len(dest))
	for _, c := range dest {
		if c.ID != cardID {
			others = append(others, c)
		}
	}

	flags := cmd.Flags()
	for _, name := range []string{"before", "after"} {
		if !flags.Changed(name) {
			continue
		}
		ref, _ := flags.GetString(name)
		anchor, _, err := resolveCard(board, ref)
		if err != nil {
			return 0, err
		}
		i := indexOfCard(others, anchor.ID)
		if i < 0 {
			return 0, fmt.Errorf("card %s is not in the target list", ref)
		}
		if name == "after" {
			i++
		}
		return i, nil
	}

	index, _ := flags.GetInt("index")
	if index < 0 || index > len(others) {
		return len(others), nil
	}
	return index, nil
}

func indexOfCard(cards []dto.CardDTO, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// slotPosition allocates the position for an item inserted at index
func slotPosition[T store.Item[T]](items []T, excludeID string, index int) (float64, error) {
	keys := make([]float64, 0, len(items))
	for _, it := range items {
		if it.ItemID() != excludeID {
			keys = append(keys, it.ItemPosition())
		}
	}
	if index < 0 || index > len(keys) {
		return 0, fmt.Errorf("index %d out of range 0..%d", index, len(keys))
	}
	return position.Between(keys, index), nil
}
