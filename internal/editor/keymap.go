package editor

import "github.com/cliofy/ted/internal/key"

// keyNode is one entry of a keymap: either a bound command or a nested
// keymap reached by a prefix chord, mirroring the original's
// extended_keymap/global_keymap tables where a slot holds either a
// function pointer or another table.
type keyNode struct {
	cmd    Command
	nested keymap
}

// keymap is an ordered list of (key, node) pairs. A plain slice rather
// than a map keeps lookup order stable for documentation purposes and
// matches the original's flat array-of-structs table.
type keymap []keyEntry

type keyEntry struct {
	k    key.Key
	node keyNode
}

func (m keymap) lookup(k key.Key) (keyNode, bool) {
	for _, e := range m {
		if e.k.Equal(k) {
			return e.node, true
		}
	}
	return keyNode{}, false
}

func bind(lit string, cmd Command) keyEntry {
	return keyEntry{k: key.MustParseLiteral(lit), node: keyNode{cmd: cmd}}
}

func bindNested(lit string, nested keymap) keyEntry {
	return keyEntry{k: key.MustParseLiteral(lit), node: keyNode{nested: nested}}
}

// extendedKeymap is reached via the C-x prefix, grounded on the
// original's extended_keymap table (_examples/original_source/src/ted.c
// lines 2652-2658).
var extendedKeymap = keymap{
	bind("=", ShowLineColumn),
	bind("C-c", Quit),
	bind("C-n", SetGoalColumn),
	bind("C-q", ToggleReadOnlyMode),
	bind("C-s", SaveBuffer),
	bind("M-c", KillTed),
	// C-x C-x: exchange-point-and-mark. Listed inline so the copy of this
	// table that globalKeymap nests under C-x includes it.
	bind("C-x", ExchangePointAndMark),
}

// globalKeymap is the top-level dispatch table, grounded on the
// original's global_keymap table (_examples/original_source/src/ted.c
// lines 2660-2714). Bare printable keys are not listed here — the
// command loop falls back to InsertChar for any key with no keymap
// binding whose IsText() is true.
var globalKeymap = keymap{
	bindNested("C-x", extendedKeymap),

	bind("C-<space>", SetMark),
	bind("C-a", BeginningOfRow),
	bind("<home>", BeginningOfRow),
	bind("C-b", BackwardChar),
	bind("<left>", BackwardChar),
	bind("C-d", DeleteChar),
	bind("C-e", EndOfRow),
	bind("<end>", EndOfRow),
	bind("C-f", ForwardChar),
	bind("<right>", ForwardChar),
	bind("C-n", NextRow),
	bind("<down>", NextRow),
	bind("C-o", OpenLine),
	bind("C-p", PreviousRow),
	bind("<up>", PreviousRow),
	bind("C-q", SearchQuit),
	bind("C-r", SearchPrevious),
	bind("C-s", SearchBuffer),
	bind("C-v", ScrollUp),
	bind("C-w", KillRegion),
	bind("C-y", Yank),
	bind("C-z", Suspend),

	bind("C-<down>", ForwardParagraph),
	bind("C-<left>", BackwardWord),
	bind("C-<right>", ForwardWord),
	bind("C-<up>", BackwardParagraph),

	bind("M-O", OpenPreviousLine),
	bind("M-a", BeginningOfLine),
	bind("M-b", BackwardWord),
	bind("M-e", EndOfLine),
	bind("M-f", ForwardWord),
	bind("M-g", GotoLine),
	bind("M-o", OpenNextLine),
	bind("M-v", ScrollDown),
	bind("M-w", KillRegionSave),
	bind("M-%", GotoPercent),
	bind("M-<", BeginningOfBuffer),
	bind("M->", EndOfBuffer),

	bind("S-<down>", SetMarkNextRow),
	bind("S-<left>", SetMarkBackwardChar),
	bind("S-<right>", SetMarkForwardChar),
	bind("S-<up>", SetMarkPreviousRow),

	bind("C-M-b", BackwardParagraph),
	bind("C-M-f", ForwardParagraph),

	bind("C-S-<down>", SetMarkForwardParagraph),
	bind("C-S-<left>", SetMarkBackwardWord),
	bind("C-S-<right>", SetMarkForwardWord),
	bind("C-S-<up>", SetMarkBackwardParagraph),

	bind("<backspace>", DeleteBackwardChar),
	bind("<delete>", DeleteForwardChar),
	bind("<next>", PageDown),
	bind("<prior>", PageUp),

	// <return>/<tab> are textchars in the original's is_textchar despite
	// being symbolic keys (no rune); Key.IsText here requires a rune, so
	// they need explicit insert_char bindings to get the same fallthrough.
	bind("<return>", InsertChar),
	bind("<tab>", InsertChar),
}
