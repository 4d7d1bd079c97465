package tui

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"teamboard/internal/application/dto"
	"teamboard/internal/coordinator"
	"teamboard/internal/dnd"
)

const refreshInterval = 5 * time.Second

type mode int

const (
	modeBrowse mode = iota
	modeMove
	modeInput
	modeConfirm
	modeDetail
)

type inputPurpose int

const (
	inputAddCard inputPurpose = iota
	inputAddList
	inputEditCard
	inputRenameList
)

// moveState is a keyboard drag in progress. destIndex counts positions in
// the destination list without the moving card.
type moveState struct {
	card        dto.CardDTO
	sourceList  string
	sourceIndex int
	destList    int
	destIndex   int
}

// Model represents the TUI state
type Model struct {
	coord   *coordinator.Coordinator
	adapter *dnd.Adapter

	boardID   string
	boardName string

	focusedList            int
	focusedCard            int
	scrollOffsets          map[string]int // vertical scroll per list id
	horizontalScrollOffset int
	width                  int
	height                 int

	mode    mode
	input   textinput.Model
	purpose inputPurpose
	// target is the card or list a prompt applies to
	target     string
	targetKind coordinator.Kind
	moving     *moveState
	help       help.Model

	// inFlight counts dispatched mutations not yet settled. Refreshes
	// are held back while it is non-zero.
	inFlight  int
	// revision counts changes to either store; a snapshot fetched at an
	// older revision is dropped
	revision  *atomic.Uint64
	status    string
	statusErr bool
}

// NewModel creates a TUI model for a board already loaded into coord
func NewModel(coord *coordinator.Coordinator, board *dto.BoardDTO) Model {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 40

	revision := new(atomic.Uint64)
	bump := func(uint64) { revision.Add(1) }
	coord.Cards().Subscribe(bump)
	coord.Lists().Subscribe(bump)

	return Model{
		coord:         coord,
		adapter:       dnd.NewAdapter(coord),
		boardID:       board.ID,
		boardName:     board.Name,
		scrollOffsets: make(map[string]int),
		input:         input,
		help:          help.New(),
		revision:      revision,
	}
}

// settledMsg carries the answer to a dispatched mutation back to the
// event loop, where it is settled against the stores.
type settledMsg coordinator.Result

type boardMsg struct {
	revision uint64
	board    *dto.BoardDTO
	err      error
}

type tickMsg time.Time

func doTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return doTick()
}

// dispatch sends p off the event loop. Local-only changes are settled at once.
func (m *Model) dispatch(p *coordinator.Pending) tea.Cmd {
	if p.Local() {
		m.coord.Settle(p.Dispatch(context.Background()))
		return nil
	}
	m.inFlight++
	return func() tea.Msg {
		return settledMsg(p.Dispatch(context.Background()))
	}
}

// start dispatches a freshly applied mutation or reports why it could not
// be applied
func (m *Model) start(p *coordinator.Pending, err error) tea.Cmd {
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	m.clearStatus()
	return m.dispatch(p)
}

func (m Model) refresh() tea.Cmd {
	coord, id, rev := m.coord, m.boardID, m.revision.Load()
	return func() tea.Msg {
		board, err := coord.FetchBoard(context.Background(), id)
		return boardMsg{revision: rev, board: board, err: err}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m Model) lists() []dto.ListDTO {
	return m.coord.Lists().Items(m.boardID)
}

func (m Model) cards(listID string) []dto.CardDTO {
	return m.coord.Cards().Items(listID)
}

func (m Model) currentList() (dto.ListDTO, bool) {
	lists := m.lists()
	if m.focusedList < 0 || m.focusedList >= len(lists) {
		return dto.ListDTO{}, false
	}
	return lists[m.focusedList], true
}

func (m Model) currentCard() (dto.CardDTO, bool) {
	list, ok := m.currentList()
	if !ok {
		return dto.CardDTO{}, false
	}
	cards := m.cards(list.ID)
	if m.focusedCard < 0 || m.focusedCard >= len(cards) {
		return dto.CardDTO{}, false
	}
	return cards[m.focusedCard], true
}

// visibleCards estimates how many cards fit in a list column
func (m Model) visibleCards() int {
	n := (m.height - 10) / cardHeight
	if n < 1 {
		return 1
	}
	return n
}

// visibleLists is how many list columns fit side by side
func (m Model) visibleLists() int {
	n := m.width / minListWidth
	if n < 1 {
		return 1
	}
	return n
}

// clampFocus keeps focus inside the board after the stores changed
func (m *Model) clampFocus() {
	lists := m.lists()
	if m.focusedList >= len(lists) {
		m.focusedList = len(lists) - 1
	}
	if m.focusedList < 0 {
		m.focusedList = 0
	}

	count := 0
	if list, ok := m.currentList(); ok {
		count = len(m.cards(list.ID))
	}
	if m.focusedCard >= count {
		m.focusedCard = count - 1
	}
	if m.focusedCard < 0 {
		m.focusedCard = 0
	}
}

// updateScroll keeps the focused card and list visible
func (m *Model) updateScroll() {
	if list, ok := m.currentList(); ok {
		viewport := m.visibleCards()
		offset := m.scrollOffsets[list.ID]
		if m.focusedCard < offset {
			offset = m.focusedCard
		} else if m.focusedCard >= offset+viewport {
			offset = m.focusedCard - viewport + 1
		}
		maxScroll := len(m.cards(list.ID)) - viewport
		if maxScroll < 0 {
			maxScroll = 0
		}
		if offset > maxScroll {
			offset = maxScroll
		}
		if offset < 0 {
			offset = 0
		}
		m.scrollOffsets[list.ID] = offset
	}

	focused := m.focusedList
	if m.mode == modeMove && m.moving != nil {
		focused = m.moving.destList
	}
	visible := m.visibleLists()
	if focused < m.horizontalScrollOffset {
		m.horizontalScrollOffset = focused
	} else if focused >= m.horizontalScrollOffset+visible {
		m.horizontalScrollOffset = focused - visible + 1
	}
	maxScroll := len(m.lists()) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.horizontalScrollOffset > maxScroll {
		m.horizontalScrollOffset = maxScroll
	}
	if m.horizontalScrollOffset < 0 {
		m.horizontalScrollOffset = 0
	}
}
