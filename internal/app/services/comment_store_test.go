package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
)

func TestFetchCommentsKeepsOtherPosts(t *testing.T) {
	gw := newFakeGateway()
	gw.getComments = func(_ context.Context, postID models.ID, postType models.PostType) ([]models.Comment, error) {
		return []models.Comment{
			{ID: "c1", PostID: postID, PostType: postType, Text: "hi"},
			{ID: "c1", PostID: postID, PostType: postType, Text: "edited"},
			{ID: "x", PostID: "other", PostType: postType},
		}, nil
	}
	store := NewCommentStore(gw, zerolog.Nop())

	store.FetchComments(context.Background(), "e1", models.PostTypeEvent)
	got := store.FetchComments(context.Background(), "a1", models.PostTypeAccommodation)

	if len(got) != 1 || got[0].Text != "edited" {
		t.Fatalf("unexpected comments %+v", got)
	}
	if len(store.Comments("e1", models.PostTypeEvent)) != 1 {
		t.Fatalf("fetching another post must keep e1 comments")
	}
	if len(store.Comments("e1", models.PostTypeAccommodation)) != 0 {
		t.Fatalf("post type is part of the key")
	}
}

func TestFetchCommentsFailureKeepsCache(t *testing.T) {
	fail := false
	gw := newFakeGateway()
	gw.getComments = func(_ context.Context, postID models.ID, postType models.PostType) ([]models.Comment, error) {
		if fail {
			return nil, serverError("getComments")
		}
		return []models.Comment{{ID: "c1", PostID: postID, PostType: postType}}, nil
	}
	store := NewCommentStore(gw, zerolog.Nop())

	store.FetchComments(context.Background(), "e1", models.PostTypeEvent)
	fail = true
	got := store.FetchComments(context.Background(), "e1", models.PostTypeEvent)
	if len(got) != 1 {
		t.Fatalf("failed fetch must keep cached comments, got %+v", got)
	}
}

func TestOverlappingFetchesResolveInRequestOrder(t *testing.T) {
	releaseFirst := make(chan struct{})
	firstStarted := make(chan struct{})

	var mu sync.Mutex
	calls := 0
	gw := newFakeGateway()
	gw.getComments = func(_ context.Context, postID models.ID, postType models.PostType) ([]models.Comment, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			close(firstStarted)
			<-releaseFirst
			return []models.Comment{{ID: "old", PostID: postID, PostType: postType}}, nil
		}
		return []models.Comment{{ID: "new", PostID: postID, PostType: postType}}, nil
	}
	store := NewCommentStore(gw, zerolog.Nop())

	done := make(chan []models.Comment)
	go func() {
		done <- store.FetchComments(context.Background(), "e1", models.PostTypeEvent)
	}()
	<-firstStarted

	second := store.FetchComments(context.Background(), "e1", models.PostTypeEvent)
	if len(second) != 1 || second[0].ID != "new" {
		t.Fatalf("unexpected second result %+v", second)
	}

	close(releaseFirst)
	first := <-done
	if len(first) != 1 || first[0].ID != "new" {
		t.Fatalf("stale fetch must return the newer cache, got %+v", first)
	}
	if cached := store.Comments("e1", models.PostTypeEvent); cached[0].ID != "new" {
		t.Fatalf("stale fetch overwrote the cache: %+v", cached)
	}
}

func TestAddCommentRefetchesPost(t *testing.T) {
	gw := newFakeGateway()
	gw.addComment = func(c models.Comment) (models.Comment, error) {
		c.ID = "c9"
		c.PostID = ""
		return c, nil
	}
	gw.getComments = func(_ context.Context, postID models.ID, postType models.PostType) ([]models.Comment, error) {
		return []models.Comment{{ID: "c9", PostID: postID, PostType: postType, Text: "saved"}}, nil
	}
	store := NewCommentStore(gw, zerolog.Nop())

	res := store.AddComment(context.Background(), models.Comment{PostID: "e1", PostType: models.PostTypeEvent, Text: "hello"})
	if !res.Success || res.Record.PostID != "e1" {
		t.Fatalf("unexpected result %+v", res)
	}
	if gw.count("getComments") != 1 {
		t.Fatalf("expected one refetch, got %d", gw.count("getComments"))
	}
	cached := store.Comments("e1", models.PostTypeEvent)
	if len(cached) != 1 || cached[0].Text != "saved" {
		t.Fatalf("unexpected cache %+v", cached)
	}
}

func TestAddCommentFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.addComment = func(models.Comment) (models.Comment, error) {
		return models.Comment{}, serverError("addComment")
	}
	store := NewCommentStore(gw, zerolog.Nop())

	res := store.AddComment(context.Background(), models.Comment{PostID: "e1", PostType: models.PostTypeEvent})
	if res.Success || res.Message == "" {
		t.Fatalf("expected failure with message, got %+v", res)
	}
	if gw.count("getComments") != 0 {
		t.Fatalf("failed add must not refetch")
	}
}

func TestResetForgetsCachedComments(t *testing.T) {
	fail := false
	gw := newFakeGateway()
	gw.getComments = func(_ context.Context, postID models.ID, postType models.PostType) ([]models.Comment, error) {
		if fail {
			return nil, serverError("getComments")
		}
		return []models.Comment{{ID: "c1", PostID: postID, PostType: postType}}, nil
	}
	store := NewCommentStore(gw, zerolog.Nop())
	s := newTestSession(t, newFakeGateway(), nil)
	s.Subscribe(func(ev AuthEvent) {
		if ev.Kind == SignedOut {
			store.Reset()
		}
	})

	s.Login(context.Background(), &models.User{ID: "u1"})
	s.Wait()
	if got := store.FetchComments(context.Background(), "e1", models.PostTypeEvent); len(got) != 1 {
		t.Fatalf("expected cached comment, got %+v", got)
	}

	s.Logout(context.Background())
	fail = true

	if got := store.FetchComments(context.Background(), "e1", models.PostTypeEvent); len(got) != 0 {
		t.Fatalf("comments survived logout: %+v", got)
	}

	fail = false
	if got := store.FetchComments(context.Background(), "e1", models.PostTypeEvent); len(got) != 1 {
		t.Fatalf("fetches after reset must apply, got %+v", got)
	}
}

func TestResetDropsInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	gw := newFakeGateway()
	gw.getComments = func(_ context.Context, postID models.ID, postType models.PostType) ([]models.Comment, error) {
		close(started)
		<-release
		return []models.Comment{{ID: "late", PostID: postID, PostType: postType}}, nil
	}
	store := NewCommentStore(gw, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.FetchComments(context.Background(), "e1", models.PostTypeEvent)
	}()
	<-started
	store.Reset()
	close(release)
	wg.Wait()

	if cached := store.Comments("e1", models.PostTypeEvent); len(cached) != 0 {
		t.Fatalf("late fetch repopulated the cache: %+v", cached)
	}
}

func TestResetDropsInFlightAdd(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	gw := newFakeGateway()
	gw.addComment = func(c models.Comment) (models.Comment, error) {
		close(started)
		<-release
		c.ID = "c1"
		return c, nil
	}
	store := NewCommentStore(gw, zerolog.Nop())

	done := make(chan Result[models.Comment])
	go func() {
		done <- store.AddComment(context.Background(), models.Comment{PostID: "e1", PostType: models.PostTypeEvent})
	}()
	<-started
	store.Reset()
	close(release)

	if res := <-done; !res.Success {
		t.Fatalf("expected the backend result to be reported, got %+v", res)
	}
	if cached := store.Comments("e1", models.PostTypeEvent); len(cached) != 0 {
		t.Fatalf("late add repopulated the cache: %+v", cached)
	}
	if gw.count("getComments") != 0 {
		t.Fatalf("late add must not refetch")
	}
}
