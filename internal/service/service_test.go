package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/internal/testutil"

	"gorm.io/gorm"
)

type services struct {
	db       *gorm.DB
	users    *UserService
	posts    *PostService
	follows  *FollowService
	likes    *LikeService
	requests *FollowRequestService
}

func newServices(t *testing.T) *services {
	t.Helper()
	gdb := testutil.OpenDB(t)

	userRepo := repository.NewUserRepository(gdb)
	postRepo := repository.NewPostRepository(gdb)
	followRepo := repository.NewFollowRepository(gdb)
	likeRepo := repository.NewLikeRepository(gdb)
	requestRepo := repository.NewFollowRequestRepository(gdb)

	return &services{
		db:       gdb,
		users:    NewUserService(userRepo, postRepo, followRepo),
		posts:    NewPostService(postRepo, userRepo, likeRepo),
		follows:  NewFollowService(followRepo),
		likes:    NewLikeService(likeRepo),
		requests: NewFollowRequestService(requestRepo, followRepo),
	}
}

func (s *services) createUser(t *testing.T, handle string) *model.User {
	t.Helper()
	u, err := s.users.CreateUser(context.Background(), CreateUserRequest{
		ExternalAuthID: "ext-" + handle,
		Handle:         handle,
		DisplayName:    "User " + handle,
		Email:          handle + "@example.com",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", handle, err)
	}
	return u
}

func TestCreateUser_DuplicateHandle(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	first := s.createUser(t, "alice")

	_, err := s.users.CreateUser(ctx, CreateUserRequest{
		ExternalAuthID: "someone-else",
		Handle:         "alice",
		DisplayName:    "Impostor",
		Email:          "imp@example.com",
	})
	if !errors.Is(err, ErrHandleTaken) || !errors.Is(err, repository.ErrConstraintViolation) {
		t.Fatalf("expected handle conflict, got %v", err)
	}

	got, err := s.users.GetByExternalAuthID(ctx, "ext-alice")
	if err != nil || got == nil || got.ID != first.ID {
		t.Fatalf("first user must remain readable, got %+v (err %v)", got, err)
	}
}

func TestCreateUser_DuplicateExternalAuthID(t *testing.T) {
	s := newServices(t)
	s.createUser(t, "alice")

	_, err := s.users.CreateUser(context.Background(), CreateUserRequest{
		ExternalAuthID: "ext-alice",
		Handle:         "alice2",
		DisplayName:    "Alice",
		Email:          "alice2@example.com",
	})
	if !errors.Is(err, ErrUserExists) || errors.Is(err, ErrHandleTaken) {
		t.Fatalf("expected generic user conflict, got %v", err)
	}
}

func TestCreateUser_Defaults(t *testing.T) {
	s := newServices(t)
	u := s.createUser(t, "alice")

	if u.Bio != "" || u.IsPrivate || u.IsVerified || u.IsAdmin || u.PhotoURL != nil {
		t.Fatalf("unexpected defaults: %+v", u)
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("expected creation time")
	}
}

func TestCreateUser_Validation(t *testing.T) {
	s := newServices(t)

	_, err := s.users.CreateUser(context.Background(), CreateUserRequest{
		ExternalAuthID: "x",
		Handle:         "",
		DisplayName:    "X",
		Email:          "x@example.com",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "accountHandle" {
		t.Fatalf("expected validation error on accountHandle, got %v", err)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatal("validation errors should match ErrInvalidInput")
	}
}

func TestUpdateUser_Partial(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	s.createUser(t, "alice")
	s.createUser(t, "bob")

	bio := "hello there"
	private := true
	u, err := s.users.UpdateUser(ctx, "ext-alice", UpdateUserRequest{Bio: &bio, IsPrivate: &private})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Bio != bio || !u.IsPrivate || u.Handle != "alice" {
		t.Fatalf("unexpected user after update: %+v", u)
	}

	taken := "bob"
	_, err = s.users.UpdateUser(ctx, "ext-alice", UpdateUserRequest{Handle: &taken})
	if !errors.Is(err, ErrHandleTaken) {
		t.Fatalf("expected handle conflict on update, got %v", err)
	}

	blank := "   "
	_, err = s.users.UpdateUser(ctx, "ext-alice", UpdateUserRequest{Handle: &blank})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "accountHandle" {
		t.Fatalf("expected validation error for blank handle, got %v", err)
	}
	empty := ""
	_, err = s.users.UpdateUser(ctx, "ext-alice", UpdateUserRequest{DisplayName: &empty})
	if !errors.As(err, &ve) || ve.Field != "displayName" {
		t.Fatalf("expected validation error for empty display name, got %v", err)
	}

	padded := "  alicia  "
	u, err = s.users.UpdateUser(ctx, "ext-alice", UpdateUserRequest{Handle: &padded})
	if err != nil || u.Handle != "alicia" || u.DisplayName != "User alice" {
		t.Fatalf("expected trimmed handle and untouched display name, got %+v (err %v)", u, err)
	}

	missing, err := s.users.UpdateUser(ctx, "ext-nobody", UpdateUserRequest{Bio: &bio})
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing user, got %+v (err %v)", missing, err)
	}
}

func TestHandleInUseAndPublicProfile(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	alice := s.createUser(t, "alice")

	if in, _ := s.users.HandleInUse(ctx, "alice"); !in {
		t.Fatal("expected alice handle in use")
	}
	if in, _ := s.users.HandleInUse(ctx, "carol"); in {
		t.Fatal("expected carol handle free")
	}

	p, err := s.users.PublicProfile(ctx, alice.ID)
	if err != nil || p == nil {
		t.Fatalf("public profile: %v", err)
	}
	if p.Handle != "alice" || p.ID != alice.ID {
		t.Fatalf("unexpected profile %+v", p)
	}

	none, err := s.users.PublicProfile(ctx, "missing")
	if err != nil || none != nil {
		t.Fatalf("expected nil profile, got %+v (err %v)", none, err)
	}
}

func TestFollowLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	a := s.createUser(t, "a")
	b := s.createUser(t, "b")

	if ok, err := s.follows.FollowExists(ctx, a.ID, b.ID); err != nil || ok {
		t.Fatalf("expected no follow yet, got %v (err %v)", ok, err)
	}
	if _, err := s.follows.AddFollow(ctx, FollowRequestBody{FollowerID: a.ID, FollowedID: b.ID}); err != nil {
		t.Fatalf("add follow: %v", err)
	}
	if ok, _ := s.follows.FollowExists(ctx, a.ID, b.ID); !ok {
		t.Fatal("expected follow after insert")
	}
	// removeFollow 参数顺序为 (被关注者, 关注者)
	if err := s.follows.RemoveFollow(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("remove follow: %v", err)
	}
	if ok, _ := s.follows.FollowExists(ctx, a.ID, b.ID); ok {
		t.Fatal("expected no follow after removal")
	}
}

func TestRemoveMissingRelationshipsIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	if err := s.follows.RemoveFollow(ctx, "x", "y"); err != nil {
		t.Fatalf("remove follow: %v", err)
	}
	if err := s.likes.RemoveLike(ctx, "x", "y"); err != nil {
		t.Fatalf("remove like: %v", err)
	}
	if err := s.requests.RemoveFollowRequest(ctx, "x", "y"); err != nil {
		t.Fatalf("remove follow request: %v", err)
	}
}

func TestFollowersExample(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	alice := s.createUser(t, "alice")
	bob := s.createUser(t, "bob")

	if _, err := s.follows.AddFollow(ctx, FollowRequestBody{FollowerID: bob.ID, FollowedID: alice.ID}); err != nil {
		t.Fatalf("add follow: %v", err)
	}

	followers, err := s.follows.Followers(ctx, alice.ID)
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if len(followers) != 1 || followers[0].User == nil || followers[0].User.Handle != "bob" {
		t.Fatalf("expected exactly bob, got %+v", followers)
	}

	counts, err := s.users.ProfileCounts(ctx, alice.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Followers != 1 || counts.Following != 0 || counts.Posts != 0 {
		t.Fatalf("unexpected counts %+v", counts)
	}

	following, _ := s.follows.Following(ctx, bob.ID)
	if len(following) != 1 || following[0].User.Handle != "alice" {
		t.Fatalf("expected bob following alice, got %+v", following)
	}
}

func TestProfileCounts(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	u := s.createUser(t, "u")
	v := s.createUser(t, "v")
	w := s.createUser(t, "w")

	for i := 0; i < 3; i++ {
		if _, err := s.posts.CreatePost(ctx, CreatePostRequest{PosterID: u.ID, Text: "post"}); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}
	_, _ = s.follows.AddFollow(ctx, FollowRequestBody{FollowerID: v.ID, FollowedID: u.ID})
	_, _ = s.follows.AddFollow(ctx, FollowRequestBody{FollowerID: w.ID, FollowedID: u.ID})
	_, _ = s.follows.AddFollow(ctx, FollowRequestBody{FollowerID: u.ID, FollowedID: v.ID})

	counts, err := s.users.ProfileCounts(ctx, u.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	want := model.ProfileCounts{Posts: 3, Followers: 2, Following: 1}
	if *counts != want {
		t.Fatalf("expected %+v, got %+v", want, *counts)
	}
}

func TestPostsByUser_SortedWithLikes(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	u := s.createUser(t, "u")
	liker := s.createUser(t, "liker")

	base := time.Now().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		p, err := s.posts.CreatePost(ctx, CreatePostRequest{PosterID: u.ID, Text: "post", PostedAt: &at})
		if err != nil {
			t.Fatalf("create post: %v", err)
		}
		ids = append(ids, p.ID)
	}
	_, _ = s.likes.AddLike(ctx, LikeRequestBody{LikerID: liker.ID, PostID: ids[0]})
	_, _ = s.likes.AddLike(ctx, LikeRequestBody{LikerID: u.ID, PostID: ids[0]})
	_, _ = s.likes.AddLike(ctx, LikeRequestBody{LikerID: liker.ID, PostID: ids[2]})

	posts, err := s.posts.PostsByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("posts by user: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		if !posts[i-1].PostedAt.After(posts[i].PostedAt) {
			t.Fatalf("posts not strictly descending at %d", i)
		}
	}
	for _, p := range posts {
		want, _ := s.likes.CountByPost(ctx, p.ID)
		if p.Likes != want {
			t.Fatalf("post %s: likes %d, independent count %d", p.ID, p.Likes, want)
		}
		if p.Poster == nil || p.Poster.Handle != "u" {
			t.Fatalf("expected poster summary, got %+v", p.Poster)
		}
	}
	if posts[2].ID != ids[0] || posts[2].Likes != 2 {
		t.Fatalf("oldest post should be last with 2 likes, got %+v", posts[2])
	}
}

func TestCreatePost_UnknownPoster(t *testing.T) {
	s := newServices(t)
	_, err := s.posts.CreatePost(context.Background(), CreatePostRequest{PosterID: "ghost", Text: "boo"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "posterId" {
		t.Fatalf("expected posterId validation error, got %v", err)
	}
}

func TestGetRandomAndDeletePost(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	if p, err := s.posts.RandomPost(ctx); err != nil || p != nil {
		t.Fatalf("expected nil random post on empty store, got %+v (err %v)", p, err)
	}

	u := s.createUser(t, "u")
	created, _ := s.posts.CreatePost(ctx, CreatePostRequest{PosterID: u.ID, Text: "only"})
	_, _ = s.likes.AddLike(ctx, LikeRequestBody{LikerID: u.ID, PostID: created.ID})

	r, err := s.posts.RandomPost(ctx)
	if err != nil || r == nil || r.ID != created.ID {
		t.Fatalf("expected the only post, got %+v (err %v)", r, err)
	}

	single, err := s.posts.GetPost(ctx, created.ID)
	if err != nil || single == nil || single.Likes != 1 {
		t.Fatalf("unexpected single post %+v (err %v)", single, err)
	}

	if err := s.posts.DeletePost(ctx, created.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if p, _ := s.posts.GetPost(ctx, created.ID); p != nil {
		t.Fatal("post should be gone")
	}
	// 点赞不级联删除
	if n, _ := s.likes.CountByPost(ctx, created.ID); n != 1 {
		t.Fatalf("expected like to survive post deletion, got %d", n)
	}
}

func TestLikes(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	if ok, _ := s.likes.LikeExists(ctx, "u", "p"); ok {
		t.Fatal("no like expected")
	}
	_, _ = s.likes.AddLike(ctx, LikeRequestBody{LikerID: "u", PostID: "p"})
	_, _ = s.likes.AddLike(ctx, LikeRequestBody{LikerID: "v", PostID: "p"})
	_, _ = s.likes.AddLike(ctx, LikeRequestBody{LikerID: "u", PostID: "q"})

	if ok, _ := s.likes.LikeExists(ctx, "u", "p"); !ok {
		t.Fatal("like expected")
	}
	byPost, _ := s.likes.LikesByPost(ctx, "p")
	byUser, _ := s.likes.LikesByUser(ctx, "u")
	if len(byPost) != 2 || len(byUser) != 2 {
		t.Fatalf("expected 2 and 2, got %d and %d", len(byPost), len(byUser))
	}

	if err := s.likes.RemoveLike(ctx, "u", "p"); err != nil {
		t.Fatalf("remove like: %v", err)
	}
	if ok, _ := s.likes.LikeExists(ctx, "u", "p"); ok {
		t.Fatal("like should be removed")
	}
}

func TestApproveFollowRequest(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	a := s.createUser(t, "a")
	b := s.createUser(t, "b")

	fr, err := s.requests.AddFollowRequest(ctx, FollowRequestCreate{RequesterID: a.ID, TargetID: b.ID})
	if err != nil {
		t.Fatalf("add follow request: %v", err)
	}
	if ok, _ := s.requests.FollowRequestExists(ctx, a.ID, b.ID); !ok {
		t.Fatal("expected pending request")
	}

	pending, err := s.requests.RequestsForUser(ctx, b.ID)
	if err != nil || len(pending) != 1 || pending[0].Requester.Handle != "a" {
		t.Fatalf("unexpected pending list %+v (err %v)", pending, err)
	}

	follow, err := s.requests.Approve(ctx, fr.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if follow.FollowerID != a.ID || follow.FollowedID != b.ID {
		t.Fatalf("unexpected follow %+v", follow)
	}
	if ok, _ := s.follows.FollowExists(ctx, a.ID, b.ID); !ok {
		t.Fatal("expected follow after approval")
	}
	if ok, _ := s.requests.FollowRequestExists(ctx, a.ID, b.ID); ok {
		t.Fatal("expected request removed after approval")
	}
}

func TestApproveFollowRequest_DeleteFailureKeepsBoth(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	a := s.createUser(t, "a")
	b := s.createUser(t, "b")

	fr, err := s.requests.AddFollowRequest(ctx, FollowRequestCreate{RequesterID: a.ID, TargetID: b.ID})
	if err != nil {
		t.Fatalf("add follow request: %v", err)
	}

	errDeleteRefused := errors.New("delete refused")
	err = s.db.Callback().Delete().Before("gorm:delete").Register("test:refuse_follow_request_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "follow_request" {
			_ = tx.AddError(errDeleteRefused)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	follow, err := s.requests.Approve(ctx, fr.ID)
	if err == nil || follow != nil {
		t.Fatalf("expected approval error, got follow %+v", follow)
	}
	if !errors.Is(err, errDeleteRefused) {
		t.Fatalf("expected delete failure to be wrapped, got %v", err)
	}

	if ok, err := s.follows.FollowExists(ctx, a.ID, b.ID); err != nil || !ok {
		t.Fatalf("follow created before the failed delete must remain, got %v (err %v)", ok, err)
	}
	if ok, err := s.requests.FollowRequestExists(ctx, a.ID, b.ID); err != nil || !ok {
		t.Fatalf("request must remain after the failed delete, got %v (err %v)", ok, err)
	}
}

func TestApproveFollowRequest_NotFound(t *testing.T) {
	s := newServices(t)
	_, err := s.requests.Approve(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRelationshipValidation(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	if _, err := s.follows.AddFollow(ctx, FollowRequestBody{FollowerID: "a"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := s.follows.FollowExists(ctx, "", "b"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := s.likes.AddLike(ctx, LikeRequestBody{PostID: "p"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
