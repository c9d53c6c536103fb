package out

import "context"

// Player opens an embed locator for viewing.
type Player interface {
	Play(ctx context.Context, embedURL string) error
}
