package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"teamboard/internal/application/dto"
	"teamboard/internal/coordinator"
	"teamboard/internal/domain/entity"
	"teamboard/pkg/markdown"
	"teamboard/tui/style"
)

const (
	minListWidth = 28
	// cardHeight is the rendered height of one card including spacing
	cardHeight = 3
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	if m.mode == modeDetail {
		body = m.renderDetail()
	} else {
		body = m.renderBoard()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	header := style.ListTitleStyle.Render(m.boardName)
	if m.inFlight > 0 {
		header += style.PendingCardStyle.Render(fmt.Sprintf("saving %d…", m.inFlight))
	}
	return header
}

func (m Model) renderBoard() string {
	lists := m.lists()
	if len(lists) == 0 {
		return style.HelpStyle.Render("No lists. Press " + keys.AddList.Help().Key + " to add one.")
	}

	visible := m.visibleLists()
	if visible > len(lists) {
		visible = len(lists)
	}
	// Each list has 2 border chars and horizontal padding on both sides
	width := m.width/visible - 6
	if width < minListWidth-6 {
		width = minListWidth - 6
	}

	end := m.horizontalScrollOffset + visible
	if end > len(lists) {
		end = len(lists)
	}
	var columns []string
	for i := m.horizontalScrollOffset; i < end; i++ {
		columns = append(columns, m.renderList(lists[i], i, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// renderList draws one list column. During a move the moving card is
// shown at its drop slot instead of its current place.
func (m Model) renderList(list dto.ListDTO, index, width int) string {
	focused := index == m.focusedList
	cards := m.cards(list.ID)

	var rows []string
	dropAt := -1
	if m.mode == modeMove && m.moving != nil {
		kept := cards[:0:0]
		for _, c := range cards {
			if c.ID != m.moving.card.ID {
				kept = append(kept, c)
			}
		}
		cards = kept
		if m.moving.destList == index {
			focused = true
			dropAt = m.moving.destIndex
		}
	}

	title := style.ListTitleStyle.Width(width).Render(fmt.Sprintf("%s (%d)", list.Name, len(cards)))

	offset := 0
	if m.mode != modeMove {
		offset = m.scrollOffsets[list.ID]
	}
	viewport := m.visibleCards()
	end := offset + viewport
	if end > len(cards) {
		end = len(cards)
	}

	if offset > 0 {
		rows = append(rows, indicator("▲ more above ▲", width))
	}
	for i := offset; i < end; i++ {
		if i == dropAt {
			rows = append(rows, m.renderDropSlot(width))
		}
		selected := m.mode != modeMove && focused && i == m.focusedCard
		rows = append(rows, renderCard(cards[i], width, selected))
	}
	if dropAt >= end {
		rows = append(rows, m.renderDropSlot(width))
	}
	if end < len(cards) {
		rows = append(rows, indicator("▼ more below ▼", width))
	}
	if len(cards) == 0 && dropAt < 0 {
		rows = append(rows, style.CardStyle.Width(width).Faint(true).Render("(empty)"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(rows, "\n"))
	height := m.height - 6
	if height < 1 {
		height = 1
	}
	if focused {
		return style.FocusedListStyle.Height(height).Render(content)
	}
	return style.ListStyle.Height(height).Render(content)
}

func (m Model) renderDropSlot(width int) string {
	return style.DropTargetStyle.Width(width).Render("▸ " + m.moving.card.Title)
}

func renderCard(card dto.CardDTO, width int, selected bool) string {
	st := style.CardStyle
	switch {
	case selected:
		st = style.SelectedCardStyle
	case entity.IsTempID(card.ID):
		st = style.PendingCardStyle
	}

	var meta []string
	if card.Priority != "" && card.Priority != string(entity.PriorityNone) {
		meta = append(meta, style.PriorityStyle(card.Priority).Render("● "+card.Priority))
	}
	if len(card.Assignees) > 0 {
		meta = append(meta, "@"+strings.Join(card.Assignees, " @"))
	}
	if len(card.Checklist) > 0 {
		done := 0
		for _, item := range card.Checklist {
			if item.Done {
				done++
			}
		}
		meta = append(meta, fmt.Sprintf("☑ %d/%d", done, len(card.Checklist)))
	}

	lines := []string{truncate(card.Title, width-2)}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, "  "))
	} else {
		lines = append(lines, "")
	}
	return st.Width(width).Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) renderDetail() string {
	card, ok := m.currentCard()
	if !ok {
		return ""
	}
	list, _ := m.currentList()
	width := m.width - 8
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(style.ListTitleStyle.Render(card.Title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "List:      %s\n", list.Name)
	fmt.Fprintf(&b, "Priority:  %s\n", style.PriorityStyle(card.Priority).Render(card.Priority))
	if len(card.Assignees) > 0 {
		fmt.Fprintf(&b, "Assignees: %s\n", strings.Join(card.Assignees, ", "))
	}
	fmt.Fprintf(&b, "Modified:  %s\n", card.ModifiedAt.Format("2006-01-02 15:04"))

	if card.Description != "" {
		b.WriteString("\n")
		b.WriteString(markdown.Render(card.Description, width))
		b.WriteString("\n")
	}
	if len(card.Checklist) > 0 {
		b.WriteString("\nChecklist\n")
		for _, item := range card.Checklist {
			mark := "[ ]"
			if item.Done {
				mark = "[x]"
			}
			fmt.Fprintf(&b, "  %s %s\n", mark, item.Text)
		}
	}

	return style.FocusedListStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderFooter() string {
	var lines []string

	switch m.mode {
	case modeInput:
		lines = append(lines, style.StatusStyle.Render(m.input.View()))
	case modeConfirm:
		lines = append(lines, style.ErrorStyle.Render(m.confirmQuestion()))
	}

	if m.status != "" {
		if m.statusErr {
			lines = append(lines, style.ErrorStyle.Render(m.status))
		} else {
			lines = append(lines, style.StatusStyle.Render(m.status))
		}
	}

	lines = append(lines, style.HelpStyle.Render(m.help.ShortHelpView(keys.help(m.mode))))
	return strings.Join(lines, "\n")
}

func (m Model) confirmQuestion() string {
	if m.targetKind == coordinator.KindCard {
		if card, _, _, ok := m.coord.Cards().Locate(m.target); ok {
			return fmt.Sprintf("Delete card %q? (y/n)", card.Title)
		}
		return "Delete card? (y/n)"
	}
	for _, l := range m.lists() {
		if l.ID == m.target {
			return fmt.Sprintf("Delete list %q and its %d cards? (y/n)", l.Name, len(m.cards(l.ID)))
		}
	}
	return "Delete list? (y/n)"
}

func indicator(text string, width int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		Width(width).
		Align(lipgloss.Center).
		Render(text)
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
