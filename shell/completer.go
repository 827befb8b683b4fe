package shell

import (
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
)

// commandNames is the static list of shell commands.
var commandNames = []string{
	"layer", "network", "forward", "train", "weights", "setweights",
	"relu", "sigmoid", "tanh", "softmax", "add", "matmul", "transpose",
	"reason", "cognitive", "orchestrate", "broadcast", "reset", "help", "quit",
}

var (
	activationNames = []string{"relu", "sigmoid", "tanh", "linear"}
	ruleNames       = []string{"max", "min", "avg", "consensus"}
)

// Completer completes command names, the activation argument of layer and the
// rule argument of reason.
type Completer struct{}

func NewCompleter() *Completer { return &Completer{} }

var _ readline.AutoCompleter = (*Completer)(nil)

// Do implements readline.AutoCompleter. Candidates are returned as suffixes of
// the word under the cursor, and length is that word's length.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if len(line) == 0 || pos <= 0 {
		return nil, 0
	}
	if pos > len(line) {
		pos = len(line)
	}

	text := string(line[:pos])
	start := strings.LastIndexAny(text, " \t") + 1
	word := text[start:]
	before := strings.Fields(text[:start])

	switch {
	case len(before) == 0:
		return complete(commandNames, word)
	case before[0] == "layer" && len(before) == 3:
		return complete(activationNames, word)
	case before[0] == "reason" && len(before) == 1:
		return complete(ruleNames, word)
	}
	return nil, 0
}

func complete(candidates []string, prefix string) ([][]rune, int) {
	var matches [][]rune
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			matches = append(matches, []rune(c[len(prefix):]+" "))
		}
	}
	return matches, utf8.RuneCountInString(prefix)
}
