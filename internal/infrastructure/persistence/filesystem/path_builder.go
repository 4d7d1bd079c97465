package filesystem

import (
	"path/filepath"
	"strings"
)

const (
	boardFile = "board.md"
	listFile  = "list.md"
	listsDir  = "lists"
	cardsDir  = "cards"
	cardExt   = ".md"
)

// PathBuilder constructs filesystem paths for board entities:
//
//	{root}/{board}/board.md
//	{root}/{board}/lists/{list}/list.md
//	{root}/{board}/lists/{list}/cards/{card}.md
type PathBuilder struct {
	boardsRootPath string
}

// NewPathBuilder creates a new PathBuilder
func NewPathBuilder(boardsRootPath string) *PathBuilder {
	return &PathBuilder{
		boardsRootPath: boardsRootPath,
	}
}

// BoardsRoot returns the root path for all boards
func (pb *PathBuilder) BoardsRoot() string {
	return pb.boardsRootPath
}

// BoardDir returns the directory path for a board
func (pb *PathBuilder) BoardDir(boardID string) string {
	return filepath.Join(pb.boardsRootPath, boardID)
}

// BoardMetadata returns the path to a board's board.md file
func (pb *PathBuilder) BoardMetadata(boardID string) string {
	return filepath.Join(pb.BoardDir(boardID), boardFile)
}

// ListsDir returns the directory holding a board's lists
func (pb *PathBuilder) ListsDir(boardID string) string {
	return filepath.Join(pb.BoardDir(boardID), listsDir)
}

// ListDir returns the directory path for a list
func (pb *PathBuilder) ListDir(boardID, listID string) string {
	return filepath.Join(pb.ListsDir(boardID), listID)
}

// ListMetadata returns the path to a list's list.md file
func (pb *PathBuilder) ListMetadata(boardID, listID string) string {
	return filepath.Join(pb.ListDir(boardID, listID), listFile)
}

// CardsDir returns the directory holding a list's cards
func (pb *PathBuilder) CardsDir(boardID, listID string) string {
	return filepath.Join(pb.ListDir(boardID, listID), cardsDir)
}

// CardFile returns the path to a card's markdown file
func (pb *PathBuilder) CardFile(boardID, listID, cardID string) string {
	return filepath.Join(pb.CardsDir(boardID, listID), cardID+cardExt)
}

// CardIDFromFile returns the card id for a file name, or false when the
// name is not a card file.
func CardIDFromFile(name string) (string, bool) {
	if !strings.HasSuffix(name, cardExt) || strings.HasPrefix(name, ".") {
		return "", false
	}
	return strings.TrimSuffix(name, cardExt), true
}

// BoardIDFromPath returns the board a path under the root belongs to
func (pb *PathBuilder) BoardIDFromPath(path string) (string, bool) {
	rel, err := filepath.Rel(pb.boardsRootPath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return strings.SplitN(filepath.ToSlash(rel), "/", 2)[0], true
}
