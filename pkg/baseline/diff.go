package baseline

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/matzehuels/stadump/pkg/errors"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

// Compare checks got against base. It returns nil when they are identical and
// an *errors.MismatchError carrying a unified diff otherwise.
func Compare(base *Record, got []byte) error {
	if base.Hash == Hash(got) && base.Text == string(got) {
		return nil
	}
	return &errors.MismatchError{Name: base.Name, Diff: Diff(base.Name, base.Text, string(got))}
}

// Diff renders a unified diff from want to got, labelled with name.
func Diff(name, want, got string) string {
	return UnifiedDiff(name+" (baseline)", name+" (current)", want, got)
}

// UnifiedDiff renders a unified diff from want (labelled from) to got
// (labelled to). It returns "" when the texts are equal.
func UnifiedDiff(from, to, want, got string) string {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: from,
		ToFile:   to,
		Context:  diffContext,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return err.Error()
	}
	return text
}
