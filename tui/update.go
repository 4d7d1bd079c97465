package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"teamboard/internal/application/dto"
	"teamboard/internal/coordinator"
	"teamboard/internal/dnd"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case settledMsg:
		m.inFlight--
		out := m.coord.Settle(coordinator.Result(msg))
		if out.Failure != nil {
			m.setError(out.Failure.Message)
		}
		if out.FollowUp != nil {
			cmd = m.dispatch(out.FollowUp)
		}
		m.clampFocus()

	case boardMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Failed to refresh board: %v", msg.err))
			break
		}
		// Anything applied locally since the fetch was issued is newer
		// than the snapshot.
		if msg.revision != m.revision.Load() {
			break
		}
		if m.inFlight == 0 && m.mode != modeMove {
			m.coord.ApplyBoard(msg.board)
			m.boardName = msg.board.Name
			m.clampFocus()
		}

	case tickMsg:
		if m.inFlight == 0 && m.mode == modeBrowse {
			return m, tea.Batch(m.refresh(), doTick())
		}
		return m, doTick()

	case tea.KeyMsg:
		switch m.mode {
		case modeMove:
			cmd = m.handleMoveKey(msg)
		case modeInput:
			cmd = m.handleInputKey(msg)
		case modeConfirm:
			cmd = m.handleConfirmKey(msg)
		case modeDetail:
			cmd = m.handleDetailKey(msg)
		default:
			if key.Matches(msg, keys.Quit) {
				return m, tea.Quit
			}
			cmd = m.handleBrowseKey(msg)
		}
	}

	m.updateScroll()
	return m, cmd
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Left):
		m.moveLeft()
	case key.Matches(msg, keys.Right):
		m.moveRight()
	case key.Matches(msg, keys.Up):
		if m.focusedCard > 0 {
			m.focusedCard--
		}
	case key.Matches(msg, keys.Down):
		if list, ok := m.currentList(); ok && m.focusedCard < len(m.cards(list.ID))-1 {
			m.focusedCard++
		}
	case key.Matches(msg, keys.Move):
		m.beginMove()
	case key.Matches(msg, keys.ListLeft):
		return m.moveList(-1)
	case key.Matches(msg, keys.ListRight):
		return m.moveList(1)
	case key.Matches(msg, keys.Add):
		if list, ok := m.currentList(); ok {
			return m.prompt(inputAddCard, list.ID, "Card title", "")
		}
	case key.Matches(msg, keys.AddList):
		return m.prompt(inputAddList, m.boardID, "List name", "")
	case key.Matches(msg, keys.Edit):
		if card, ok := m.currentCard(); ok {
			return m.prompt(inputEditCard, card.ID, "Card title", card.Title)
		}
		if list, ok := m.currentList(); ok {
			return m.prompt(inputRenameList, list.ID, "List name", list.Name)
		}
	case key.Matches(msg, keys.Delete):
		if card, ok := m.currentCard(); ok {
			m.confirm(coordinator.KindCard, card.ID)
		} else if list, ok := m.currentList(); ok {
			m.confirm(coordinator.KindList, list.ID)
		}
	case key.Matches(msg, keys.Detail):
		if _, ok := m.currentCard(); ok {
			m.mode = modeDetail
		}
	case key.Matches(msg, keys.Refresh):
		m.setStatus("Refreshing…")
		return m.refresh()
	}
	return nil
}

func (m *Model) moveLeft() {
	if m.focusedList > 0 {
		m.focusedList--
		m.focusedCard = 0
		m.clampFocus()
	}
}

func (m *Model) moveRight() {
	if m.focusedList < len(m.lists())-1 {
		m.focusedList++
		m.focusedCard = 0
		m.clampFocus()
	}
}

func (m *Model) beginMove() {
	card, ok := m.currentCard()
	if !ok {
		return
	}
	m.moving = &moveState{
		card:        card,
		sourceList:  card.ListID,
		sourceIndex: m.focusedCard,
		destList:    m.focusedList,
		destIndex:   m.focusedCard,
	}
	m.mode = modeMove
	m.setStatus(fmt.Sprintf("Moving %q: choose a place and press enter", card.Title))
}

// destCount is the number of slots in the move destination, excluding the
// moving card itself
func (m Model) destCount() int {
	lists := m.lists()
	if m.moving == nil || m.moving.destList >= len(lists) {
		return 0
	}
	n := 0
	for _, c := range m.cards(lists[m.moving.destList].ID) {
		if c.ID != m.moving.card.ID {
			n++
		}
	}
	return n
}

func (m *Model) handleMoveKey(msg tea.KeyMsg) tea.Cmd {
	mv := m.moving
	switch {
	case key.Matches(msg, keys.Cancel):
		m.endMove()
		m.clearStatus()
	case key.Matches(msg, keys.Left):
		if mv.destList > 0 {
			mv.destList--
		}
	case key.Matches(msg, keys.Right):
		if mv.destList < len(m.lists())-1 {
			mv.destList++
		}
	case key.Matches(msg, keys.Up):
		if mv.destIndex > 0 {
			mv.destIndex--
		}
	case key.Matches(msg, keys.Down):
		mv.destIndex++
	case key.Matches(msg, keys.Confirm), key.Matches(msg, keys.Move):
		return m.drop()
	}
	if n := m.destCount(); mv.destIndex > n {
		mv.destIndex = n
	}
	return nil
}

func (m *Model) drop() tea.Cmd {
	mv := m.moving
	lists := m.lists()
	m.endMove()
	if mv.destList >= len(lists) {
		return nil
	}
	dest := lists[mv.destList]

	p, err := m.adapter.DropCard(dnd.Gesture{
		SourceContainer: mv.sourceList,
		SourceIndex:     indexOfCard(m.cards(mv.sourceList), mv.card.ID),
		DestContainer:   dest.ID,
		DestIndex:       mv.destIndex,
	})
	if errors.Is(err, dnd.ErrNoMove) {
		m.clearStatus()
		return nil
	}
	cmd := m.start(p, err)
	if err == nil {
		m.focusedList = mv.destList
		m.focusedCard = indexOfCard(m.cards(dest.ID), mv.card.ID)
	}
	return cmd
}

func (m *Model) endMove() {
	m.moving = nil
	m.mode = modeBrowse
}

func (m *Model) moveList(delta int) tea.Cmd {
	dest := m.focusedList + delta
	if dest < 0 || dest >= len(m.lists()) {
		return nil
	}
	p, err := m.adapter.DropList(m.boardID, m.focusedList, dest)
	cmd := m.start(p, err)
	if err == nil {
		m.focusedList = dest
	}
	return cmd
}

func (m *Model) prompt(purpose inputPurpose, target, placeholder, value string) tea.Cmd {
	m.mode = modeInput
	m.purpose = purpose
	m.target = target
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.closeInput()
		return nil
	case key.Matches(msg, keys.Confirm):
		value := strings.TrimSpace(m.input.Value())
		m.closeInput()
		if value == "" {
			return nil
		}
		return m.submit(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) closeInput() {
	m.input.Blur()
	m.input.Reset()
	m.mode = modeBrowse
}

func (m *Model) submit(value string) tea.Cmd {
	switch m.purpose {
	case inputAddCard:
		p, err := m.coord.CreateCard(m.target, dto.CreateCardRequest{Title: value})
		cmd := m.start(p, err)
		if err == nil {
			m.focusedCard = len(m.cards(m.target)) - 1
		}
		return cmd
	case inputAddList:
		p, err := m.coord.CreateList(m.boardID, dto.CreateListRequest{Name: value})
		cmd := m.start(p, err)
		if err == nil {
			m.focusedList = len(m.lists()) - 1
			m.focusedCard = 0
		}
		return cmd
	case inputEditCard:
		return m.start(m.coord.UpdateCard(m.target, dto.UpdateCardRequest{Title: &value}))
	case inputRenameList:
		return m.start(m.coord.UpdateList(m.target, dto.UpdateListRequest{Name: &value}))
	}
	return nil
}

func (m *Model) confirm(kind coordinator.Kind, id string) {
	m.mode = modeConfirm
	m.targetKind = kind
	m.target = id
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	m.mode = modeBrowse
	if !key.Matches(msg, keys.Yes) {
		return nil
	}

	var cmd tea.Cmd
	if m.targetKind == coordinator.KindCard {
		cmd = m.start(m.coord.DeleteCard(m.target))
	} else {
		cmd = m.start(m.coord.DeleteList(m.target))
	}
	m.clampFocus()
	return cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Edit):
		if card, ok := m.currentCard(); ok {
			return m.prompt(inputEditCard, card.ID, "Card title", card.Title)
		}
	case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Detail), key.Matches(msg, keys.Quit):
		m.mode = modeBrowse
	}
	return nil
}

func indexOfCard(cards []dto.CardDTO, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
