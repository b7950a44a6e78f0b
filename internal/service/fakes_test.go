package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"context"
	"sort"
	"time"
)

// 内存版仓储实现，供服务层单元测试使用。

var (
	_ repository.UserRepo       = (*fakeUserRepo)(nil)
	_ repository.PostRepo       = (*fakePostRepo)(nil)
	_ repository.CategoryRepo   = (*fakeCategoryRepo)(nil)
	_ repository.CommentRepo    = (*fakeCommentRepo)(nil)
	_ repository.PostActionRepo = (*fakePostActionRepo)(nil)
	_ repository.UserFollowRepo = (*fakeUserFollowRepo)(nil)
)

type fakeUserRepo struct {
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*model.User), nextID: 1}
}

func (f *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListRegularUsers(_ context.Context, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	for _, user := range f.users {
		if user.IsUser && !user.IsSuperuser {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return paginate(users, limit, offset), nil
}

func (f *fakeUserRepo) ListAdmins(_ context.Context) ([]*model.User, error) {
	var users []*model.User
	for _, user := range f.users {
		if user.IsAdmin && !user.IsSuperuser {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountUsersCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, user := range f.users {
		if !user.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) UpdateUserProfile(_ context.Context, id uint64, fields map[string]interface{}) error {
	user, ok := f.users[id]
	if !ok {
		return nil
	}
	if v, ok := fields["username"]; ok {
		user.Username = v.(string)
	}
	if v, ok := fields["email"]; ok {
		user.Email = v.(string)
	}
	if v, ok := fields["bio"]; ok {
		bio := v.(string)
		user.Bio = &bio
	}
	if v, ok := fields["date_of_birth"]; ok {
		user.DateOfBirth = v.(*time.Time)
	}
	return nil
}

func (f *fakeUserRepo) PromoteToAdmin(_ context.Context, id uint64) (int64, error) {
	user, ok := f.users[id]
	if !ok || user.IsSuperuser {
		return 0, nil
	}
	user.IsAdmin = true
	user.IsUser = false
	return 1, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uint64, hashed string) error {
	if user, ok := f.users[id]; ok {
		user.Password = hashed
	}
	return nil
}

func (f *fakeUserRepo) UpdateAvatar(_ context.Context, id uint64, objectName string) error {
	if user, ok := f.users[id]; ok {
		user.AvatarURL = &objectName
	}
	return nil
}

type fakePostRepo struct {
	posts      map[uint64]*model.Post
	users      *fakeUserRepo
	categories *fakeCategoryRepo
	nextID     uint64
}

func newFakePostRepo(users *fakeUserRepo, categories *fakeCategoryRepo) *fakePostRepo {
	return &fakePostRepo{
		posts:      make(map[uint64]*model.Post),
		users:      users,
		categories: categories,
		nextID:     1,
	}
}

func (f *fakePostRepo) hydrate(post *model.Post) *model.Post {
	clone := *post
	if f.users != nil {
		if author, ok := f.users.users[post.AuthorID]; ok {
			clone.Author = *author
		}
	}
	if f.categories != nil && post.CategoryID != nil {
		if category, ok := f.categories.categories[*post.CategoryID]; ok {
			clone.Category = category
		}
	}
	return &clone
}

func (f *fakePostRepo) GetPostById(_ context.Context, id uint64) (*model.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	return f.hydrate(post), nil
}

func (f *fakePostRepo) GetPostBySlug(_ context.Context, slug string) (*model.Post, error) {
	for _, post := range f.posts {
		if post.Slug == slug {
			return f.hydrate(post), nil
		}
	}
	return nil, nil
}

func (f *fakePostRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, post := range f.posts {
		if post.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostRepo) ListPosts(_ context.Context, filter *repository.PostFilter, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	for _, post := range f.posts {
		if filter.AuthorID != 0 && post.AuthorID != filter.AuthorID {
			continue
		}
		if filter.CategoryID != 0 && (post.CategoryID == nil || *post.CategoryID != filter.CategoryID) {
			continue
		}
		if filter.IsPublished != nil && post.IsPublished != *filter.IsPublished {
			continue
		}
		if filter.ViewerID == 0 {
			if !post.IsPublished {
				continue
			}
		} else if !post.IsPublished && post.AuthorID != filter.ViewerID {
			continue
		}
		posts = append(posts, f.hydrate(post))
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return paginate(posts, limit, offset), nil
}

func (f *fakePostRepo) ListRecentPublished(_ context.Context, limit int) ([]*model.Post, error) {
	published := true
	return f.ListPosts(context.Background(), &repository.PostFilter{IsPublished: &published}, limit, 0)
}

func (f *fakePostRepo) CountPosts(_ context.Context) (int64, error) {
	return int64(len(f.posts)), nil
}

func (f *fakePostRepo) CountPublishedPosts(_ context.Context) (int64, error) {
	var count int64
	for _, post := range f.posts {
		if post.IsPublished {
			count++
		}
	}
	return count, nil
}

func (f *fakePostRepo) CountPostsByAuthor(_ context.Context, authorID uint64) (int64, error) {
	var count int64
	for _, post := range f.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *model.Post) error {
	post.ID = f.nextID
	f.nextID++
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id uint64, fields map[string]interface{}) error {
	post, ok := f.posts[id]
	if !ok {
		return nil
	}
	if v, ok := fields["title"]; ok {
		post.Title = v.(string)
	}
	if v, ok := fields["content"]; ok {
		post.Content = v.(string)
	}
	if v, ok := fields["is_published"]; ok {
		post.IsPublished = v.(bool)
	}
	if v, ok := fields["image"]; ok {
		image := v.(string)
		post.Image = &image
	}
	if v, ok := fields["category_id"]; ok {
		if v == nil {
			post.CategoryID = nil
		} else {
			id := v.(uint64)
			post.CategoryID = &id
		}
	}
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id uint64) error {
	delete(f.posts, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uint64]*model.Category
	nextID     uint64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uint64]*model.Category), nextID: 1}
}

func (f *fakeCategoryRepo) ListCategories(_ context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	for _, category := range f.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (f *fakeCategoryRepo) GetCategoryById(_ context.Context, id uint64) (*model.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	return category, nil
}

func (f *fakeCategoryRepo) GetCategoryByName(_ context.Context, name string) (*model.Category, error) {
	for _, category := range f.categories {
		if category.Name == name {
			return category, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) GetCategoryBySlug(_ context.Context, slug string) (*model.Category, error) {
	for _, category := range f.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) CreateCategory(_ context.Context, category *model.Category) error {
	category.ID = f.nextID
	f.nextID++
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) UpdateCategory(_ context.Context, category *model.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) DeleteCategory(_ context.Context, id uint64) error {
	delete(f.categories, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[uint64]*model.Comment
	users    *fakeUserRepo
	nextID   uint64
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint64]*model.Comment), users: users, nextID: 1}
}

func (f *fakeCommentRepo) hydrate(comment *model.Comment) *model.Comment {
	clone := *comment
	if f.users != nil {
		if author, ok := f.users.users[comment.AuthorID]; ok {
			clone.Author = *author
		}
	}
	return &clone
}

func (f *fakeCommentRepo) GetCommentById(_ context.Context, id uint64) (*model.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	return f.hydrate(comment), nil
}

func (f *fakeCommentRepo) ListCommentsByPostID(_ context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	return f.list(postID, 0, limit, offset), nil
}

func (f *fakeCommentRepo) ListCommentsByPostAndAuthor(_ context.Context, postID, authorID uint64, limit, offset int) ([]*model.Comment, error) {
	return f.list(postID, authorID, limit, offset), nil
}

func (f *fakeCommentRepo) list(postID, authorID uint64, limit, offset int) []*model.Comment {
	var comments []*model.Comment
	for _, comment := range f.comments {
		if comment.PostID != postID {
			continue
		}
		if authorID != 0 && comment.AuthorID != authorID {
			continue
		}
		comments = append(comments, f.hydrate(comment))
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return paginate(comments, limit, offset)
}

func (f *fakeCommentRepo) CountCommentsByPostID(_ context.Context, postID uint64) (int64, error) {
	var count int64
	for _, comment := range f.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) CountComments(_ context.Context) (int64, error) {
	return int64(len(f.comments)), nil
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	comment.CreatedAt = time.Now()
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *fakeCommentRepo) UpdateCommentContent(_ context.Context, id uint64, content string) error {
	if comment, ok := f.comments[id]; ok {
		comment.Content = content
	}
	return nil
}

func (f *fakeCommentRepo) DeleteComment(_ context.Context, id uint64) error {
	delete(f.comments, id)
	return nil
}

type likeKey struct {
	userID uint64
	postID uint64
}

type viewKey struct {
	postID uint64
	userID uint64
}

type fakePostActionRepo struct {
	likes     map[likeKey]struct{}
	viewers   map[viewKey]struct{}
	analytics map[uint64]*model.PostAnalytics
}

func newFakePostActionRepo() *fakePostActionRepo {
	return &fakePostActionRepo{
		likes:     make(map[likeKey]struct{}),
		viewers:   make(map[viewKey]struct{}),
		analytics: make(map[uint64]*model.PostAnalytics),
	}
}

func (f *fakePostActionRepo) CheckLikeExists(_ context.Context, userID, postID uint64) (bool, error) {
	_, ok := f.likes[likeKey{userID, postID}]
	return ok, nil
}

func (f *fakePostActionRepo) CreateLike(_ context.Context, userID, postID uint64) error {
	f.likes[likeKey{userID, postID}] = struct{}{}
	return nil
}

func (f *fakePostActionRepo) DeleteLike(_ context.Context, userID, postID uint64) error {
	delete(f.likes, likeKey{userID, postID})
	return nil
}

func (f *fakePostActionRepo) GetLikeCountByPostID(_ context.Context, postID uint64) (int64, error) {
	var count int64
	for key := range f.likes {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakePostActionRepo) CreateViewer(_ context.Context, postID, userID uint64) (bool, error) {
	key := viewKey{postID, userID}
	if _, ok := f.viewers[key]; ok {
		return false, nil
	}
	f.viewers[key] = struct{}{}
	return true, nil
}

func (f *fakePostActionRepo) GetAnalytics(_ context.Context, postID uint64) (*model.PostAnalytics, error) {
	analytics, ok := f.analytics[postID]
	if !ok {
		return nil, nil
	}
	clone := *analytics
	return &clone, nil
}

func (f *fakePostActionRepo) UpsertAnalyticsLikes(_ context.Context, postID uint64, likes int64) error {
	analytics, ok := f.analytics[postID]
	if !ok {
		f.analytics[postID] = &model.PostAnalytics{PostID: postID, Likes: likes}
		return nil
	}
	analytics.Likes = likes
	return nil
}

func (f *fakePostActionRepo) IncrementAnalyticsViews(_ context.Context, postID uint64) error {
	analytics, ok := f.analytics[postID]
	if !ok {
		f.analytics[postID] = &model.PostAnalytics{PostID: postID, Views: 1}
		return nil
	}
	analytics.Views++
	return nil
}

type followKey struct {
	followerID uint64
	followedID uint64
}

type fakeUserFollowRepo struct {
	follows map[followKey]time.Time
}

func newFakeUserFollowRepo() *fakeUserFollowRepo {
	return &fakeUserFollowRepo{follows: make(map[followKey]time.Time)}
}

func (f *fakeUserFollowRepo) GetUserFollowers(_ context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var follows []*model.Follow
	for key, createdAt := range f.follows {
		if key.followedID == userID {
			follows = append(follows, &model.Follow{FollowerID: key.followerID, FollowedID: key.followedID, CreatedAt: createdAt})
		}
	}
	sort.Slice(follows, func(i, j int) bool { return follows[i].FollowerID < follows[j].FollowerID })
	return paginate(follows, limit, offset), nil
}

func (f *fakeUserFollowRepo) GetUserFollowing(_ context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var follows []*model.Follow
	for key, createdAt := range f.follows {
		if key.followerID == userID {
			follows = append(follows, &model.Follow{FollowerID: key.followerID, FollowedID: key.followedID, CreatedAt: createdAt})
		}
	}
	sort.Slice(follows, func(i, j int) bool { return follows[i].FollowedID < follows[j].FollowedID })
	return paginate(follows, limit, offset), nil
}

func (f *fakeUserFollowRepo) GetUserFollowerCount(_ context.Context, userID uint64) (int64, error) {
	var count int64
	for key := range f.follows {
		if key.followedID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserFollowRepo) GetUserFollowingCount(_ context.Context, userID uint64) (int64, error) {
	var count int64
	for key := range f.follows {
		if key.followerID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserFollowRepo) GetUserFollow(_ context.Context, followerID, followedID uint64) (*model.Follow, error) {
	createdAt, ok := f.follows[followKey{followerID, followedID}]
	if !ok {
		return nil, nil
	}
	return &model.Follow{FollowerID: followerID, FollowedID: followedID, CreatedAt: createdAt}, nil
}

func (f *fakeUserFollowRepo) CreateUserFollow(_ context.Context, follow *model.Follow) error {
	key := followKey{follow.FollowerID, follow.FollowedID}
	if _, ok := f.follows[key]; !ok {
		f.follows[key] = follow.CreatedAt
	}
	return nil
}

func (f *fakeUserFollowRepo) DeleteUserFollow(_ context.Context, follow *model.Follow) error {
	delete(f.follows, followKey{follow.FollowerID, follow.FollowedID})
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
