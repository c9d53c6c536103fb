package usecase_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"cigbreak/internal/modules/clip/domain"
	"cigbreak/internal/modules/clip/dto"
	"cigbreak/internal/modules/clip/service"
	"cigbreak/internal/modules/clip/usecase"
	apperrors "cigbreak/internal/platform/errors"
)

type fakeCatalog struct {
	clips []domain.Clip
	err   error
	loads int
}

func (f *fakeCatalog) Load(context.Context) ([]domain.Clip, error) {
	f.loads++
	return f.clips, f.err
}

func newInteractor(store *fakeCatalog) *usecase.Interactor {
	svc := service.NewClipService(store, service.NewSelector(rand.New(rand.NewSource(1))), nil)
	return usecase.NewInteractor(svc).(*usecase.Interactor)
}

func TestListClipsLoadsCatalogOnce(t *testing.T) {
	t.Parallel()
	store := &fakeCatalog{clips: []domain.Clip{
		{Title: "one", SourceURL: "https://youtu.be/one"},
		{Title: "two", SourceURL: "https://youtu.be/two"},
	}}
	uc := newInteractor(store)
	for i := 0; i < 3; i++ {
		clips, err := uc.ListClips(context.Background())
		if err != nil {
			t.Fatalf("list clips: %v", err)
		}
		if len(clips) != 2 || clips[1].Title != "two" {
			t.Fatalf("unexpected clips %+v", clips)
		}
	}
	if store.loads != 1 {
		t.Fatalf("expected a single catalog load, got %d", store.loads)
	}
}

func TestPickNextSkipsSeen(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeCatalog{clips: []domain.Clip{
		{Title: "one", SourceURL: "https://youtu.be/one"},
		{Title: "two", SourceURL: "https://youtu.be/two"},
	}})
	got, err := uc.PickNext(context.Background(), dto.PickInput{Seen: []string{"https://youtu.be/one"}})
	if err != nil {
		t.Fatalf("pick next: %v", err)
	}
	if got.SourceURL != "https://youtu.be/two" {
		t.Fatalf("expected unseen clip, got %+v", got)
	}
}

func TestCatalogErrors(t *testing.T) {
	t.Parallel()
	if _, err := newInteractor(&fakeCatalog{}).ListClips(context.Background()); !errors.Is(err, apperrors.ErrEmptyCatalog) {
		t.Fatalf("expected empty catalog error, got %v", err)
	}
	invalid := &fakeCatalog{clips: []domain.Clip{{Title: "", SourceURL: "https://youtu.be/x"}}}
	if _, err := newInteractor(invalid).PickNext(context.Background(), dto.PickInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	failing := &fakeCatalog{err: errors.New("disk gone")}
	if _, err := newInteractor(failing).ListClips(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeCatalog{})
	got := uc.Resolve(context.Background(), "https://www.youtube.com/shorts/ccm8_-Sy6JI")
	if !got.Playable || got.VideoID != "ccm8_-Sy6JI" {
		t.Fatalf("unexpected resolve %+v", got)
	}
	if got.EmbedURL != "https://www.youtube.com/embed/ccm8_-Sy6JI?autoplay=1&mute=0&rel=0&modestbranding=1" {
		t.Fatalf("unexpected embed url %s", got.EmbedURL)
	}
	bad := uc.Resolve(context.Background(), "::nope")
	if bad.Playable || bad.EmbedURL != "" {
		t.Fatalf("unparseable locator must not be playable: %+v", bad)
	}
}
