package output

import (
	"fmt"
	"os"

	"github.com/mkorsbak/sattlint/pkg/blueprint"
	"github.com/mkorsbak/sattlint/pkg/parser"
)

// WriteParseTree writes a unit's pretty-printed parse tree to path.
// Pass-through debug export; not part of the core contract.
func WriteParseTree(path string, tree *parser.Node) error {
	if tree == nil {
		return fmt.Errorf("no parse tree available")
	}
	if err := os.WriteFile(path, []byte(tree.Pretty()), 0o644); err != nil {
		return fmt.Errorf("writing parse tree: %w", err)
	}
	return nil
}

// WriteFragment writes a unit's blueprint fragment in textual form to
// path.
func WriteFragment(path string, frag *blueprint.Fragment) error {
	if frag == nil {
		return fmt.Errorf("no fragment available")
	}
	if err := os.WriteFile(path, []byte(frag.String()), 0o644); err != nil {
		return fmt.Errorf("writing fragment: %w", err)
	}
	return nil
}
