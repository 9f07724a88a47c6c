package submission

import (
	"errors"

	"github.com/evcraddock/golden-profile/internal/comment"
)

// Level is the severity of a toast notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is the transient message shown to the user after an action.
type Notice struct {
	Level       Level
	Title       string
	Description string
}

// Outcome is the result of a Submit call.
type Outcome struct {
	Slot    Slot
	Comment *comment.Comment
	Err     error
}

// Notice describes the outcome for display.
func (o Outcome) Notice() Notice {
	var verr *comment.ValidationError
	switch {
	case o.Err == nil:
		return Notice{
			Level:       LevelSuccess,
			Title:       "Comment posted successfully!",
			Description: "Your comment has been saved for Golden.",
		}
	case errors.As(o.Err, &verr):
		return Notice{Level: LevelError, Title: "Error", Description: verr.Reason}
	case errors.Is(o.Err, ErrInFlight), errors.Is(o.Err, ErrAlreadyPosted), errors.Is(o.Err, ErrUnknownSlot):
		return Notice{Level: LevelError, Title: "Error", Description: o.Err.Error()}
	default:
		return Notice{
			Level:       LevelError,
			Title:       "Error posting comment",
			Description: o.Err.Error(),
		}
	}
}

// LikeNotice is shown after a like is acknowledged.
func LikeNotice() Notice {
	return Notice{
		Level:       LevelSuccess,
		Title:       "You have liked this post",
		Description: "Like has been sent to Golden",
	}
}
