package model

import "fmt"

// CommandKind selects the operation a [Command] performs.
type CommandKind uint8

// Command kinds.
const (
	KindList CommandKind = iota
	KindAdd
	KindArchive
	KindDo
	KindUndo
)

func (k CommandKind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindAdd:
		return "add"
	case KindArchive:
		return "archive"
	case KindDo:
		return "do"
	case KindUndo:
		return "undo"
	default:
		return fmt.Sprintf("CommandKind(%d)", k)
	}
}

// Command is one operation on the model. Text is used by add, Index by
// archive, do and undo.
type Command struct {
	Kind  CommandKind
	Text  string
	Index int
}

// AddCommand appends text as a new todo entry.
func AddCommand(text string) Command { return Command{Kind: KindAdd, Text: text} }

// ArchiveCommand moves todo entry i to the done list.
func ArchiveCommand(i int) Command { return Command{Kind: KindArchive, Index: i} }

// DoCommand marks todo entry i completed today.
func DoCommand(i int) Command { return Command{Kind: KindDo, Index: i} }

// UndoCommand reopens todo entry i.
func UndoCommand(i int) Command { return Command{Kind: KindUndo, Index: i} }

// ListCommand lists the todo entries.
func ListCommand() Command { return Command{Kind: KindList} }

// Mutates reports whether executing c changes a list.
func (c Command) Mutates() bool {
	switch c.Kind {
	case KindAdd, KindArchive, KindDo, KindUndo:
		return true
	default:
		return false
	}
}

func (c Command) String() string {
	switch c.Kind {
	case KindAdd:
		return fmt.Sprintf("add %q", c.Text)
	case KindArchive, KindDo, KindUndo:
		return fmt.Sprintf("%s %d", c.Kind, c.Index)
	default:
		return c.Kind.String()
	}
}
