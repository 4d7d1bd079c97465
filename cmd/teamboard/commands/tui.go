package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"teamboard/tui"
	"teamboard/tui/style"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [board-id]",
	Short: "Launch interactive terminal user interface",
	Long: `Launch the interactive TUI for a board.

Changes appear at once and are saved in the background; a change the
daemon rejects is undone and its error shown in the status line.

Keyboard shortcuts (defaults, see "keybindings" in the config):
  ←/h →/l   - Focus list to the left/right
  ↑/k ↓/j   - Focus card above/below
  m/space   - Pick up the focused card; arrows choose the place, enter drops
  < >       - Move the focused list left/right
  a         - Add card to the focused list
  A         - Add list
  e         - Edit card title (or rename an empty list)
  d         - Delete card (or list)
  enter     - Card details
  r         - Reload the board
  q/Ctrl+C  - Quit

Examples:
  teamboard
  teamboard tui team-board`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		style.InitStyles(cfg)
		tui.InitKeybindings(cfg)

		id := ""
		if len(args) > 0 {
			id = args[0]
		} else {
			var err error
			if id, err = getBoardID(ctx); err != nil {
				return err
			}
		}

		board, err := container.Coordinator.LoadBoard(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}

		p := tea.NewProgram(tui.NewModel(container.Coordinator, board), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
