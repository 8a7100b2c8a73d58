package operation

import (
	"errors"

	"github.com/ncruces/zenity"
)

type dialog struct{}

// Dialog asks the operator questions during interactive runs.
var Dialog dialog

// Confirm shows a question dialog. It returns false without error when the
// operator declines.
func (d *dialog) Confirm(title, text string) (bool, error) {
	err := zenity.Question(text,
		zenity.Title(title),
		zenity.OKLabel("Continue"),
		zenity.CancelLabel("Skip"),
	)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, zenity.ErrCanceled):
		return false, nil
	default:
		return false, err
	}
}
