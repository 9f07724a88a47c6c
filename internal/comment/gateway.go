package comment

import (
	"context"
	"errors"
)

// DefaultTable is the logical collection that holds Golden's comments.
const DefaultTable = "Comments"

// Gateway is the append-only persistence contract for comments.
// QueryAll returns newest first and reports a missing table as ErrCollectionAbsent.
type Gateway interface {
	Insert(ctx context.Context, in Input) (*Comment, error)
	QueryAll(ctx context.Context) ([]*Comment, error)
}

// QueryAll reads every comment from g, treating a missing collection as empty.
func QueryAll(ctx context.Context, g Gateway) ([]*Comment, error) {
	comments, err := g.QueryAll(ctx)
	if errors.Is(err, ErrCollectionAbsent) {
		return []*Comment{}, nil
	}
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*Comment{}
	}
	return comments, nil
}

// Unconfigured stands in for a store whose connection settings are missing.
// Inserts fail and reads look like a freshly deployed, empty feed.
type Unconfigured struct{}

// Insert always fails with ErrNotConfigured.
func (Unconfigured) Insert(context.Context, Input) (*Comment, error) {
	return nil, ErrNotConfigured
}

// QueryAll always reports ErrCollectionAbsent.
func (Unconfigured) QueryAll(context.Context) ([]*Comment, error) {
	return nil, ErrCollectionAbsent
}
